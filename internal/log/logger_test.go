package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	mu.Lock()
	prev, prevConfigured := base, configured
	base = build(Config{Level: "debug", Output: buf, Service: "test"})
	configured = true
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		base, configured = prev, prevConfigured
		mu.Unlock()
	})
	return buf
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestFromContextAddsFields(t *testing.T) {
	buf := useBuffer(t)

	ctx := ContextWithRequestID(context.Background(), "rid-1")
	l := FromContext(ctx, "content")
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rid-1", entry[FieldRequestID])
	assert.Equal(t, "content", entry[FieldComponent])
	assert.Equal(t, "test", entry["service"])
}

func TestMiddlewareLogsStatus(t *testing.T) {
	buf := useBuffer(t)

	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/about", entry[FieldPath])
	assert.EqualValues(t, http.StatusTeapot, entry[FieldStatus])
}
