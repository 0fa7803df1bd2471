package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingHandler records log records for assertions.
type capturingHandler struct {
	attrs   []slog.Attr
	records *[]slog.Record
}

func newCapturingHandler() *capturingHandler {
	return &capturingHandler{records: &[]slog.Record{}}
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	rec := r.Clone()
	rec.AddAttrs(h.attrs...)
	*h.records = append(*h.records, rec)
	return nil
}

func (h *capturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capturingHandler{attrs: append(append([]slog.Attr{}, h.attrs...), attrs...), records: h.records}
}

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func (h *capturingHandler) last() slog.Record {
	return (*h.records)[len(*h.records)-1]
}

func attrsOf(r slog.Record) map[string]any {
	out := map[string]any{}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	return out
}

func TestLoggingMiddleware_logs_request(t *testing.T) {
	capture := newCapturingHandler()
	logger := slog.New(capture)

	var ctxLogger *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = LoggerFromContext(r.Context(), nil)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})
	handler := LoggingMiddleware(logger, next)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	requestID := rr.Header().Get(RequestIDHeader)
	require.NotEmpty(t, requestID)
	assert.NotSame(t, logger, ctxLogger, "request logger is stored in context")

	rec := capture.last()
	assert.Equal(t, "request", rec.Message)
	attrs := attrsOf(rec)
	assert.Equal(t, http.MethodPost, attrs["method"])
	assert.Equal(t, "/events", attrs["path"])
	assert.EqualValues(t, http.StatusCreated, attrs["status"])
	assert.EqualValues(t, 2, attrs["bytes"])
	assert.Equal(t, requestID, attrs["request_id"])
	assert.Contains(t, attrs, "duration_ms")
}

func TestLoggingMiddleware_keeps_incoming_request_id(t *testing.T) {
	capture := newCapturingHandler()
	handler := LoggingMiddleware(slog.New(capture), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.Header.Set(RequestIDHeader, "req-abc")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "req-abc", rr.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-abc", attrsOf(capture.last())["request_id"])
}

func TestLoggingMiddleware_recovers_panic(t *testing.T) {
	capture := newCapturingHandler()
	handler := LoggingMiddleware(slog.New(capture), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/calendar", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "internal_error")
	require.Len(t, *capture.records, 2)
	assert.Equal(t, "panic recovered", (*capture.records)[0].Message)
	assert.EqualValues(t, http.StatusInternalServerError, attrsOf(capture.last())["status"])
}

func TestLoggerFromContext_fallback(t *testing.T) {
	fallback := slog.New(newCapturingHandler())
	assert.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
	assert.NotNil(t, LoggerFromContext(context.Background(), nil))
}
