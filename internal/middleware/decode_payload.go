package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/usersvc/internal/pkg/message"
	"github.com/ferdiebergado/usersvc/internal/pkg/web"
)

type decodeOptions struct {
	allowUnknownFields bool
}

type DecodeOption func(*decodeOptions)

// AllowUnknownFields makes DecodePayload drop fields T does not declare
// instead of rejecting the payload.
func AllowUnknownFields() DecodeOption {
	return func(o *decodeOptions) {
		o.allowUnknownFields = true
	}
}

// DecodePayload decodes a single JSON value of type T from the body, at most
// maxBytes long, and stores it on the request context. Unknown fields are
// rejected with 422 unless AllowUnknownFields is given.
func DecodePayload[T any](maxBytes int64, opts ...DecodeOption) func(next http.Handler) http.Handler {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			decoder := json.NewDecoder(r.Body)
			if !o.allowUnknownFields {
				decoder.DisallowUnknownFields()
			}

			var decoded T
			if err := decoder.Decode(&decoded); err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					web.RespondRequestEntityTooLarge(w, err, message.InvalidInput, nil)
					return
				}

				if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
					web.RespondUnprocessableEntity(w, err, "Unknown field in payload.", map[string]string{"field": strings.Trim(field, `"`)})
					return
				}

				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
				web.RespondBadRequest(w, errors.New("body must contain a single JSON value"), message.InvalidInput, nil)
				return
			}

			slog.Debug("payload decoded", slog.Any("payload", decoded))

			next.ServeHTTP(w, r.WithContext(web.NewContextWithParams(r.Context(), decoded)))
		})
	}
}
