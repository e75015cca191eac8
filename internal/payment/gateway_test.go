package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/payment"
	timex "github.com/ferdiebergado/usersvc/internal/pkg/time"
	"github.com/ferdiebergado/usersvc/internal/platform/jwt"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *payment.HTTPGateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Payment{BaseURL: srv.URL, Timeout: timex.Duration{Duration: time.Second}}
	jwtCfg := &config.JWT{TTL: timex.Duration{Duration: time.Minute}}
	signer := &jwt.StubSigner{
		SignFunc: func(subject string, audience []string, _ time.Duration) (string, error) {
			if subject != "usersvc" || len(audience) != 1 || audience[0] != srv.URL {
				return "", errors.New("unexpected claims")
			}
			return "signed-token", nil
		},
	}

	return payment.NewHTTPGateway(cfg, jwtCfg, signer)
}

func TestHTTPGateway_HasPendingPayments(t *testing.T) {
	t.Parallel()

	const email = "john.doe@test.com"

	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr error
	}{
		{"pending", http.StatusOK, `{"has_pending_payments":true}`, true, nil},
		{"settled", http.StatusOK, `{"has_pending_payments":false}`, false, nil},
		{"server error", http.StatusInternalServerError, `{}`, false, payment.ErrUnexpectedStatus},
		{"malformed body", http.StatusOK, `not json`, false, payment.ErrMalformed},
		{"missing field", http.StatusOK, `{}`, false, payment.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/payments/pending" {
					http.NotFound(w, r)
					return
				}
				if got := r.URL.Query().Get("email"); got != email {
					t.Errorf("email = %q, want: %q", got, email)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer signed-token" {
					t.Errorf("Authorization = %q, want: %q", got, "Bearer signed-token")
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := gw.HasPendingPayments(context.Background(), email)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("HasPendingPayments() error = %v, want: %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("HasPendingPayments() = %v, want: %v", got, tt.want)
			}
		})
	}
}

func TestHTTPGateway_EscapesEmail(t *testing.T) {
	t.Parallel()

	const email = "a+b@test.com"

	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "a%2Bb%40test.com") {
			t.Errorf("RawQuery = %q, want escaped email", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"has_pending_payments":false}`))
	})

	if _, err := gw.HasPendingPayments(context.Background(), email); err != nil {
		t.Fatal(err)
	}
}

func TestHTTPGateway_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := &config.Payment{BaseURL: srv.URL, Timeout: timex.Duration{Duration: time.Second}}
	signer := &jwt.StubSigner{SignFunc: func(string, []string, time.Duration) (string, error) { return "t", nil }}
	gw := payment.NewHTTPGateway(cfg, &config.JWT{}, signer)

	if _, err := gw.HasPendingPayments(context.Background(), "x@test.com"); err == nil {
		t.Error("HasPendingPayments() error = nil, want transport error")
	}
}
