package jwt

import (
	"errors"
	"time"
)

type StubSigner struct {
	SignFunc func(subject string, audience []string, ttl time.Duration) (string, error)
}

var _ Signer = (*StubSigner)(nil)

func (s *StubSigner) Sign(subject string, audience []string, ttl time.Duration) (string, error) {
	if s.SignFunc == nil {
		return "", errors.New("Sign() not implemented by stub")
	}
	return s.SignFunc(subject, audience, ttl)
}
