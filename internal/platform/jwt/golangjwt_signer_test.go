package jwt_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/platform/jwt"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

const testKey = "secret"

func parse(t *testing.T, token, key string) (*jwtlib.RegisteredClaims, error) {
	t.Helper()

	claims := &jwtlib.RegisteredClaims{}
	_, err := jwtlib.ParseWithClaims(token, claims, func(*jwtlib.Token) (any, error) {
		return []byte(key), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithExpirationRequired())
	return claims, err
}

func TestSign(t *testing.T) {
	t.Parallel()

	cfg := &config.JWT{JTILength: 8, Issuer: "usersvc"}
	signer := jwt.NewGolangJWTSigner(cfg, testKey)

	audience := []string{"http://payments.local"}
	token, err := signer.Sign("usersvc", audience, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := parse(t, token, testKey)
	if err != nil {
		t.Fatalf("parse signed token: %v", err)
	}

	if claims.Subject != "usersvc" {
		t.Errorf("claims.Subject = %q, want: %q", claims.Subject, "usersvc")
	}
	if claims.Issuer != cfg.Issuer {
		t.Errorf("claims.Issuer = %q, want: %q", claims.Issuer, cfg.Issuer)
	}
	if !reflect.DeepEqual([]string(claims.Audience), audience) {
		t.Errorf("claims.Audience = %v, want: %v", claims.Audience, audience)
	}
	if claims.ID == "" {
		t.Error("claims.ID is empty, want a random jti")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Minute {
		t.Errorf("claims.ExpiresAt = %v, want within a minute", claims.ExpiresAt)
	}
}

func TestSign_TokenRejected(t *testing.T) {
	t.Parallel()

	cfg := &config.JWT{JTILength: 8, Issuer: "usersvc"}

	expired, err := jwt.NewGolangJWTSigner(cfg, testKey).Sign("usersvc", nil, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	foreign, err := jwt.NewGolangJWTSigner(cfg, "other").Sign("usersvc", nil, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired", expired, jwtlib.ErrTokenExpired},
		{"wrong key", foreign, jwtlib.ErrTokenSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := parse(t, tt.token, testKey); !errors.Is(err, tt.wantErr) {
				t.Errorf("parse() error = %v, want: %v", err, tt.wantErr)
			}
		})
	}
}
