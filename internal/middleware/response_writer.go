package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
)

// SafeResponseWriter records the status and size of a response, writes the
// header at most once and drops output once the request context is done.
//
//nolint:containedctx //The writer needs the request context to stop writing to canceled requests.
type SafeResponseWriter struct {
	http.ResponseWriter
	ctx context.Context

	mu            sync.Mutex
	status        int
	headerWritten bool
	bytes         int
}

func NewSafeResponseWriter(ctx context.Context, w http.ResponseWriter) *SafeResponseWriter {
	return &SafeResponseWriter{
		ResponseWriter: w,
		ctx:            ctx,
		status:         http.StatusOK,
	}
}

// InjectWriter wraps the response writer of every request in a SafeResponseWriter.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(NewSafeResponseWriter(r.Context(), w), r)
	})
}

func (w *SafeResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeHeader(statusCode)
}

func (w *SafeResponseWriter) writeHeader(statusCode int) {
	if w.headerWritten {
		slog.Warn("superfluous WriteHeader call", "status", statusCode, "written", w.status)
		return
	}

	if err := w.ctx.Err(); err != nil {
		slog.Warn("response header dropped", "reason", err)
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
	w.status = statusCode
	w.headerWritten = true
}

func (w *SafeResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ctx.Err(); err != nil {
		slog.Warn("response body dropped", "reason", err)
		return 0, err
	}

	if !w.headerWritten {
		w.writeHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *SafeResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *SafeResponseWriter) BytesWritten() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bytes
}

func (w *SafeResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
