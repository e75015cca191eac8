// Package payment is the client for the external payment service.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/platform/jwt"
)

const (
	pendingPath = "/payments/pending"
	subject     = "usersvc"
	maxBody     = 1 << 16
)

var (
	ErrUnexpectedStatus = errors.New("payment gateway: unexpected status")
	ErrMalformed        = errors.New("payment gateway: malformed response")
)

type pendingResponse struct {
	HasPendingPayments *bool `json:"has_pending_payments"`
}

// HTTPGateway asks the payment service over HTTP whether an email has
// pending payments. Requests carry a short lived bearer token.
type HTTPGateway struct {
	client   *http.Client
	baseURL  string
	signer   jwt.Signer
	tokenTTL time.Duration
}

func NewHTTPGateway(cfg *config.Payment, jwtCfg *config.JWT, signer jwt.Signer) *HTTPGateway {
	return &HTTPGateway{
		client:   &http.Client{Timeout: cfg.Timeout.Duration},
		baseURL:  cfg.BaseURL,
		signer:   signer,
		tokenTTL: jwtCfg.TTL.Duration,
	}
}

func (g *HTTPGateway) HasPendingPayments(ctx context.Context, email string) (bool, error) {
	token, err := g.signer.Sign(subject, []string{g.baseURL}, g.tokenTTL)
	if err != nil {
		return false, fmt.Errorf("payment gateway: sign token: %w", err)
	}

	endpoint := g.baseURL + pendingPath + "?" + url.Values{"email": {email}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("payment gateway: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("payment gateway: %w", err)
	}
	defer res.Body.Close()

	slog.Debug("payment gateway responded", "status", res.StatusCode, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	var body pendingResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBody)).Decode(&body); err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if body.HasPendingPayments == nil {
		return false, fmt.Errorf("%w: missing has_pending_payments", ErrMalformed)
	}

	return *body.HasPendingPayments, nil
}
