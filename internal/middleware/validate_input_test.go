package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ferdiebergado/usersvc/internal/middleware"
	"github.com/ferdiebergado/usersvc/internal/pkg/web"
	"github.com/ferdiebergado/usersvc/internal/platform/validation"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     any
		errs       map[string]string
		wantCode   int
		wantErrors map[string]string
	}{
		{"valid", person{Name: "juan"}, nil, http.StatusOK, nil},
		{"invalid", person{}, map[string]string{"name": "name is required"}, http.StatusBadRequest, map[string]string{"name": "name is required"}},
		{"no params", nil, nil, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator := &validation.StubValidator{
				ValidateStructFunc: func(any) map[string]string { return tt.errs },
			}
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			ctx := web.NewContextWithParams(context.Background(), tt.params)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/users", nil)
			rec := httptest.NewRecorder()
			middleware.ValidateInput[person](validator)(handler).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.wantCode)
			}

			if tt.wantErrors != nil {
				var res web.ErrorResponse
				if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
					t.Fatal(err)
				}
				if !reflect.DeepEqual(res.Errors, tt.wantErrors) {
					t.Errorf("res.Errors = %v, want: %v", res.Errors, tt.wantErrors)
				}
			}
		})
	}
}
