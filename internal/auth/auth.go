// Package auth proxies admin logins to the backend token endpoint and keeps
// the resulting JWTs in HttpOnly cookies.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inno8-site/internal/backend"
)

// Backend endpoints used by the auth proxy.
const (
	EndpointToken             = "/token"
	EndpointMaintenanceToggle = "/maintenance-toggle"
)

// Cookie names and lifetimes.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	AccessTTL  = 60 * time.Minute
	RefreshTTL = 24 * time.Hour
)

var (
	// ErrBadCredentials means the backend rejected the username or password.
	ErrBadCredentials = errors.New("invalid credentials")
	// ErrThrottled means the client exceeded its login budget.
	ErrThrottled = errors.New("too many login attempts")
	// ErrNoSession means the request carries no access cookie.
	ErrNoSession = errors.New("not authenticated")
)

// Backend is the slice of the backend client the auth proxy needs.
type Backend interface {
	PostJSON(ctx context.Context, path string, in, out any, opts ...backend.RequestOption) error
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Tokens is the backend's token response.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CookieConfig controls the attributes of session cookies.
type CookieConfig struct {
	Secure bool
	Domain string
}

// Proxy turns logins into session cookies and forwards admin actions.
type Proxy struct {
	backend Backend
	limiter *RateLimiter
	cookies CookieConfig

	// OnMaintenance is called after a successful maintenance toggle.
	OnMaintenance func(on bool)
}

// NewProxy creates an auth proxy. loginRPM bounds login attempts per client IP.
func NewProxy(b Backend, cookies CookieConfig, loginRPM int) *Proxy {
	return &Proxy{
		backend: b,
		limiter: NewRateLimiter(loginRPM),
		cookies: cookies,
	}
}

// Authenticate exchanges credentials for tokens. clientIP is the throttling key.
func (p *Proxy) Authenticate(ctx context.Context, clientIP string, creds Credentials) (Tokens, error) {
	if !p.limiter.Allow(clientIP) {
		MetricLoginAttempts.WithLabelValues("throttled").Inc()
		return Tokens{}, ErrThrottled
	}

	var tokens Tokens
	err := p.backend.PostJSON(ctx, EndpointToken, creds, &tokens)
	switch {
	case backend.StatusCode(err) == http.StatusUnauthorized:
		MetricLoginAttempts.WithLabelValues("rejected").Inc()
		return Tokens{}, ErrBadCredentials
	case err != nil:
		MetricLoginAttempts.WithLabelValues("failed").Inc()
		return Tokens{}, fmt.Errorf("failed to obtain token: %w", err)
	case tokens.Access == "":
		MetricLoginAttempts.WithLabelValues("failed").Inc()
		return Tokens{}, fmt.Errorf("failed to obtain token: %w: missing access token", backend.ErrMalformed)
	}

	MetricLoginAttempts.WithLabelValues("ok").Inc()
	return tokens, nil
}

// RetryAfter reports how long clientIP must wait before its next login attempt.
func (p *Proxy) RetryAfter(clientIP string) time.Duration {
	return p.limiter.RetryAfter(clientIP)
}

// RemainingAttempts reports how many login attempts clientIP has left right
// now, or -1 when logins are not throttled.
func (p *Proxy) RemainingAttempts(clientIP string) int {
	return p.limiter.Remaining(clientIP)
}

// SetSession writes both session cookies.
func (p *Proxy) SetSession(w http.ResponseWriter, t Tokens) {
	http.SetCookie(w, p.cookie(AccessCookie, t.Access, AccessTTL))
	if t.Refresh != "" {
		http.SetCookie(w, p.cookie(RefreshCookie, t.Refresh, RefreshTTL))
	}
}

// ClearSession expires both session cookies.
func (p *Proxy) ClearSession(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		c := p.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (p *Proxy) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   p.cookies.Domain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   p.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// AccessToken returns the access cookie's value, if present.
func AccessToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(AccessCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// SetMaintenance forwards a maintenance toggle with the caller's token and
// returns the backend's response body.
func (p *Proxy) SetMaintenance(ctx context.Context, token string, on bool) (map[string]any, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	out := map[string]any{}
	req := map[string]bool{"maintenance_mode": on}
	if err := p.backend.PostJSON(ctx, EndpointMaintenanceToggle, req, &out, backend.WithBearer(token)); err != nil {
		return nil, fmt.Errorf("failed to toggle maintenance: %w", err)
	}

	if p.OnMaintenance != nil {
		p.OnMaintenance(on)
	}
	return out, nil
}

// MetricsCredentials guard the metrics listener with HTTP basic auth.
type MetricsCredentials struct {
	User         string
	PasswordHash string // bcrypt
}

// Validate checks username and password against the stored bcrypt hash
func (c MetricsCredentials) Validate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.User)) == 1
	// Always run bcrypt so timing does not reveal the username
	passErr := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return userOK && passErr == nil
}

// HashPassword generates a bcrypt hash for a password
// This is a utility function for generating METRICS_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
