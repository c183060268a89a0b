package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/likecoin/likerid-ens-gateway/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRegistrar struct{}

func (echoRegistrar) RegisterRoutes(r chi.Router) {
	r.Get("/{sender}/{call_data}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "sender")))
	})
}

func newTestServer(t *testing.T, rateLimit string) *BaseServer {
	cfg := &api.HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimit:                rateLimit,
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
	}
	srv, err := New(cfg, echoRegistrar{})
	require.NoError(t, err)
	return srv
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t, "").Handler()

	assert.Equal(t, http.StatusOK, get(h, "/livez").Code)
	assert.Equal(t, http.StatusOK, get(h, "/readyz").Code)

	w := get(h, "/drain")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"draining"}`, w.Body.String())
	assert.JSONEq(t, `{"status":"already draining"}`, get(h, "/drain").Body.String())

	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/readyz").Code)
	assert.Equal(t, http.StatusOK, get(h, "/livez").Code)

	assert.JSONEq(t, `{"status":"ready"}`, get(h, "/undrain").Body.String())
	assert.JSONEq(t, `{"status":"already ready"}`, get(h, "/undrain").Body.String())
	assert.Equal(t, http.StatusOK, get(h, "/readyz").Code)
}

func TestRegisteredRoutes(t *testing.T) {
	h := newTestServer(t, "").Handler()

	w := get(h, "/0xabc/0x1234.json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xabc", w.Body.String())
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, "").Handler()

	req := httptest.NewRequest(http.MethodGet, "/0xabc/0x1234.json", nil)
	req.Header.Set("Origin", "https://app.ens.domains")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set("Origin", "https://app.ens.domains")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, preflight)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, "2-M").Handler()

	assert.Equal(t, http.StatusOK, get(h, "/0xabc/0x01").Code)
	assert.Equal(t, http.StatusOK, get(h, "/0xabc/0x01").Code)

	w := get(h, "/0xabc/0x01")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"rate limit exceeded"}`, w.Body.String())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(h, "/livez").Code)
	}
}

func TestInvalidRateLimit(t *testing.T) {
	cfg := &api.HTTPServerConfig{
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimit: "ten per minute",
	}
	_, err := New(cfg, echoRegistrar{})
	assert.Error(t, err)
}
