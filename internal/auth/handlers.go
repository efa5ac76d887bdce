package auth

import (
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"

	"inno8-site/internal/backend"
	xlog "inno8-site/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ClientIP returns the request's remote host without the port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// HeaderRateLimitRemaining tells login clients how many attempts they have left.
const HeaderRateLimitRemaining = "X-RateLimit-Remaining"

// Login handles POST /api/auth/login.
func (p *Proxy) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&creds); err != nil ||
		creds.Username == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		return
	}

	ip := ClientIP(r)
	tokens, err := p.Authenticate(r.Context(), ip, creds)
	if n := p.RemainingAttempts(ip); n >= 0 {
		w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(n))
	}
	if err != nil {
		p.writeLoginError(w, r, ip, err)
		return
	}

	p.SetSession(w, tokens)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (p *Proxy) writeLoginError(w http.ResponseWriter, r *http.Request, ip string, err error) {
	switch {
	case errors.Is(err, ErrThrottled):
		secs := int(math.Ceil(p.RetryAfter(ip).Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many login attempts, try again later"})
	case errors.Is(err, ErrBadCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	default:
		l := xlog.FromContext(r.Context(), "auth")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("login proxy failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Authentication service unavailable"})
	}
}

// Logout handles POST /api/auth/logout.
func (p *Proxy) Logout(w http.ResponseWriter, r *http.Request) {
	p.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Check handles GET /api/auth/check.
func (p *Proxy) Check(w http.ResponseWriter, r *http.Request) {
	_, ok := AccessToken(r)
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": ok})
}

// ToggleMaintenance handles POST /api/admin/maintenance.
func (p *Proxy) ToggleMaintenance(w http.ResponseWriter, r *http.Request) {
	token, ok := AccessToken(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}

	var req struct {
		MaintenanceMode bool `json:"maintenance_mode"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "maintenance_mode is required"})
		return
	}

	out, err := p.SetMaintenance(r.Context(), token, req.MaintenanceMode)
	if err != nil {
		l := xlog.FromContext(r.Context(), "auth")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("maintenance toggle failed")

		var se *backend.StatusError
		if errors.As(err, &se) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(se.Code)
			_, _ = w.Write([]byte(se.Body))
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Backend unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// RequireSession redirects requests without an access cookie to loginPath.
func RequireSession(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := AccessToken(r); !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BasicAuth protects next with HTTP basic auth against creds.
func BasicAuth(realm string, creds MetricsCredentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !creds.Validate(user, pass) {
				w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
