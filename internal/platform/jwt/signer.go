package jwt

import "time"

// Signer issues HS256 tokens for calls to other services.
type Signer interface {
	Sign(subject string, audience []string, ttl time.Duration) (string, error)
}
