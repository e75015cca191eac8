package jwt

import (
	"fmt"
	"time"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/platform/hash"
	"github.com/golang-jwt/jwt/v5"
)

type golangJWTSigner struct {
	method jwt.SigningMethod
	key    []byte
	jtiLen uint32
	issuer string
}

var _ Signer = (*golangJWTSigner)(nil)

// NewGolangJWTSigner creates a Signer backed by golang-jwt using key as the HMAC secret.
func NewGolangJWTSigner(cfg *config.JWT, key string) Signer {
	return &golangJWTSigner{
		method: jwt.SigningMethodHS256,
		key:    []byte(key),
		jtiLen: cfg.JTILength,
		issuer: cfg.Issuer,
	}
}

func (s *golangJWTSigner) Sign(subject string, audience []string, ttl time.Duration) (string, error) {
	jti, err := hash.GenerateRandomBytesURLEncoded(s.jtiLen)
	if err != nil {
		return "", fmt.Errorf("generate jti with length %d: %w", s.jtiLen, err)
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		Audience:  audience,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
