package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inno8-site/internal/backend"
)

// fakeBackend mimics the token and maintenance endpoints.
func fakeBackend(t *testing.T, gotBearer *atomic.Value) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/token":
			var c Credentials
			_ = json.NewDecoder(r.Body).Decode(&c)
			switch c.Password {
			case "secret":
				_, _ = w.Write([]byte(`{"access":"acc-123","refresh":"ref-456"}`))
			case "explode":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"No active account"}`))
			}
		case "/api/maintenance-toggle":
			if gotBearer != nil {
				gotBearer.Store(r.Header.Get("Authorization"))
			}
			if r.Header.Get("Authorization") != "Bearer acc-123" {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"detail":"forbidden"}`))
				return
			}
			var body map[string]bool
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(map[string]any{"maintenance_mode": body["maintenance_mode"], "message": "updated"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProxy(t *testing.T, srv *httptest.Server, rpm int) *Proxy {
	t.Helper()
	return NewProxy(backend.NewClient(srv.URL+"/api", 2*time.Second), CookieConfig{Secure: true}, rpm)
}

func login(p *Proxy, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.9:5555"
	rec := httptest.NewRecorder()
	p.Login(rec, req)
	return rec
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestLogin_SetsSessionCookies(t *testing.T) {
	p := newTestProxy(t, fakeBackend(t, nil), 10)

	rec := login(p, `{"username":"admin","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := cookiesByName(rec)

	access := cookies[AccessCookie]
	require.NotNil(t, access)
	assert.Equal(t, "acc-123", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, 3600, access.MaxAge)
	assert.Equal(t, "/", access.Path)

	refresh := cookies[RefreshCookie]
	require.NotNil(t, refresh)
	assert.Equal(t, "ref-456", refresh.Value)
	assert.Equal(t, 86400, refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)
}

func TestLogin_Failures(t *testing.T) {
	p := newTestProxy(t, fakeBackend(t, nil), 100)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad credentials", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized},
		{"backend error", `{"username":"admin","password":"explode"}`, http.StatusBadGateway},
		{"missing fields", `{"username":"admin"}`, http.StatusBadRequest},
		{"garbage", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := login(p, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogin_BackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	p := newTestProxy(t, srv, 10)
	srv.Close()

	rec := login(p, `{"username":"admin","password":"secret"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLogin_Throttled(t *testing.T) {
	p := newTestProxy(t, fakeBackend(t, nil), 6) // burst of 3

	for i := range 3 {
		rec := login(p, `{"username":"a","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, strconv.Itoa(2-i), rec.Header().Get(HeaderRateLimitRemaining))
	}
	rec := login(p, `{"username":"a","password":"secret"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get(HeaderRateLimitRemaining))
}

func TestLogout_ClearsCookies(t *testing.T) {
	p := newTestProxy(t, fakeBackend(t, nil), 10)
	rec := httptest.NewRecorder()

	p.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := cookiesByName(rec)
	for _, name := range []string{AccessCookie, RefreshCookie} {
		require.Contains(t, cookies, name)
		assert.Equal(t, -1, cookies[name].MaxAge, name)
		assert.Empty(t, cookies[name].Value, name)
	}
}

func TestCheck(t *testing.T) {
	p := newTestProxy(t, fakeBackend(t, nil), 10)

	check := func(withCookie bool) bool {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "acc-123"})
		}
		rec := httptest.NewRecorder()
		p.Check(rec, req)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		return body["authenticated"]
	}

	assert.False(t, check(false))
	assert.True(t, check(true))
}

func TestToggleMaintenance(t *testing.T) {
	var bearer atomic.Value
	p := newTestProxy(t, fakeBackend(t, &bearer), 10)
	var toggled atomic.Bool
	p.OnMaintenance = func(on bool) { toggled.Store(on) }

	toggle := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/maintenance", strings.NewReader(`{"maintenance_mode":true}`))
		if token != "" {
			req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
		}
		rec := httptest.NewRecorder()
		p.ToggleMaintenance(rec, req)
		return rec
	}

	t.Run("no cookie", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, toggle("").Code)
	})

	t.Run("forwards bearer", func(t *testing.T) {
		rec := toggle("acc-123")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Bearer acc-123", bearer.Load())
		assert.True(t, toggled.Load())

		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, true, body["maintenance_mode"])
	})

	t.Run("mirrors backend status", func(t *testing.T) {
		rec := toggle("stale")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"detail":"forbidden"}`, rec.Body.String())
	})
}

func TestRequireSession(t *testing.T) {
	h := RequireSession("/admin/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/footer", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/footer", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "acc"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBasicAuth(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	h := BasicAuth("metrics", MetricsCredentials{User: "ops", PasswordHash: hash})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	tests := []struct {
		name       string
		user, pass string
		set        bool
		want       int
	}{
		{"no header", "", "", false, http.StatusUnauthorized},
		{"wrong user", "root", "hunter2", true, http.StatusUnauthorized},
		{"wrong password", "ops", "nope", true, http.StatusUnauthorized},
		{"ok", "ops", "hunter2", true, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.set {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `realm="metrics"`)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	r := NewRateLimiter(60) // burst 10, 1 token per second
	r.now = func() time.Time { return now }

	for i := range 10 {
		assert.True(t, r.Allow("1.2.3.4"), "attempt %d", i)
	}
	assert.False(t, r.Allow("1.2.3.4"))
	assert.True(t, r.Allow("5.6.7.8"), "keys are independent")
	assert.Equal(t, 0, r.Remaining("1.2.3.4"))
	assert.Equal(t, 10, r.Remaining("9.9.9.9"), "unknown keys have a full bucket")
	assert.InDelta(t, 1.0, r.RetryAfter("1.2.3.4").Seconds(), 0.01)

	now = now.Add(time.Second)
	assert.Equal(t, 1, r.Remaining("1.2.3.4"))
	assert.True(t, r.Allow("1.2.3.4"))
	assert.False(t, r.Allow("1.2.3.4"))
}

func TestRateLimiter_Unlimited(t *testing.T) {
	r := NewRateLimiter(0)
	for range 100 {
		assert.True(t, r.Allow("x"))
	}
	assert.Equal(t, -1, r.Remaining("x"))
	assert.Zero(t, r.RetryAfter("x"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:41234"
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.RemoteAddr = "198.51.100.7"
	assert.Equal(t, "198.51.100.7", ClientIP(req))
}
