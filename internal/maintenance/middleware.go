package maintenance

import (
	"encoding/json"
	"net/http"
	"strings"
)

var exemptPrefixes = []string{"/admin/", "/api/auth/", "/api/admin/", "/static/"}

// Exempt reports whether path stays reachable during maintenance.
func Exempt(path string) bool {
	switch path {
	case "/admin", "/healthz", "/favicon.ico", "/robots.txt", "/api/maintenance":
		return true
	}
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Middleware serves page with 503 for non-exempt paths while the flag is on.
func Middleware(p *Poller, page http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !p.Enabled() || Exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", "60")
			w.Header().Set("Cache-Control", "no-store")
			page.ServeHTTP(&statusWriter{ResponseWriter: w, code: http.StatusServiceUnavailable}, r)
		})
	}
}

// statusWriter forces the status code of whatever page writes.
type statusWriter struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(w.code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(w.code)
	}
	return w.ResponseWriter.Write(b)
}

// StatusHandler reports the current flag as JSON.
func StatusHandler(p *Poller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		json.NewEncoder(w).Encode(Status{MaintenanceMode: p.Enabled()})
	}
}
