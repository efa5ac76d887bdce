// Package admin serves the thin admin console: footer settings, newsletter
// subscribers and the maintenance switch.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"inno8-site/internal/auth"
	"inno8-site/internal/backend"
	"inno8-site/internal/content"
	xlog "inno8-site/internal/log"
	"inno8-site/internal/pages"
)

// Backend endpoints used by the console.
const (
	EndpointSubscribers = "/newsletter-subscribers"
	EndpointSubscribe   = "/newsletter-subscribe"
)

// Backend is the slice of the backend client the console needs.
type Backend interface {
	Do(ctx context.Context, method, path string, in, out any, opts ...backend.RequestOption) error
	GetJSON(ctx context.Context, path string, out any) error
}

// MaintenanceState reports the last known maintenance flag.
type MaintenanceState interface {
	Enabled() bool
}

// Console holds the admin handlers.
type Console struct {
	backend     Backend
	auth        *auth.Proxy
	catalog     *content.Catalog
	maintenance MaintenanceState
}

// NewConsole wires the console to its collaborators.
func NewConsole(b Backend, a *auth.Proxy, c *content.Catalog, m MaintenanceState) *Console {
	return &Console{backend: b, auth: a, catalog: c, maintenance: m}
}

// LoginPage handles GET /admin/login.
func (c *Console) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.AccessToken(r); ok {
		http.Redirect(w, r, "/admin/footer", http.StatusSeeOther)
		return
	}
	pages.Render(r.Context(), w, http.StatusOK, pages.AdminLogin(r.Context(), "", ""))
}

// Login handles the POST /admin/login form.
func (c *Console) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pages.Render(r.Context(), w, http.StatusBadRequest, pages.AdminLogin(r.Context(), "", "Invalid form submission"))
		return
	}
	creds := auth.Credentials{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
	}
	if creds.Username == "" || creds.Password == "" {
		pages.Render(r.Context(), w, http.StatusBadRequest, pages.AdminLogin(r.Context(), creds.Username, "Username and password are required"))
		return
	}

	tokens, err := c.auth.Authenticate(r.Context(), auth.ClientIP(r), creds)
	switch {
	case errors.Is(err, auth.ErrThrottled):
		pages.Render(r.Context(), w, http.StatusTooManyRequests, pages.AdminLogin(r.Context(), creds.Username, "Too many login attempts, try again later"))
		return
	case errors.Is(err, auth.ErrBadCredentials):
		pages.Render(r.Context(), w, http.StatusUnauthorized, pages.AdminLogin(r.Context(), creds.Username, "Invalid credentials"))
		return
	case err != nil:
		l := xlog.FromContext(r.Context(), "admin")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("admin login failed")
		pages.Render(r.Context(), w, http.StatusBadGateway, pages.AdminLogin(r.Context(), creds.Username, "Authentication service unavailable"))
		return
	}

	c.auth.SetSession(w, tokens)
	http.Redirect(w, r, "/admin/footer", http.StatusSeeOther)
}

// Logout handles POST /admin/logout.
func (c *Console) Logout(w http.ResponseWriter, r *http.Request) {
	c.auth.ClearSession(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Footer handles GET /admin/footer.
func (c *Console) Footer(w http.ResponseWriter, r *http.Request) {
	token, _ := auth.AccessToken(r)
	ctx := r.Context()

	var (
		footer      content.FooterSettings
		subscribers []content.NewsletterSubscriber
		subErr      error
	)
	var g errgroup.Group
	g.Go(func() error {
		footer = c.catalog.Footer.Resolve(ctx, c.backend)
		return nil
	})
	g.Go(func() error {
		subErr = c.backend.Do(ctx, http.MethodGet, EndpointSubscribers, nil, &subscribers, backend.WithBearer(token))
		return nil
	})
	_ = g.Wait()

	data := pages.AdminFooterData{
		Footer:          footer,
		Subscribers:     subscribers,
		MaintenanceMode: c.maintenance.Enabled(),
		Flash:           pages.FlashFromQuery(r),
	}
	if subErr != nil {
		if backend.StatusCode(subErr) == http.StatusUnauthorized {
			c.auth.ClearSession(w)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		l := xlog.FromContext(ctx, "admin")
		l.Warn().Err(subErr).Str("kind", backend.Kind(subErr)).Msg("failed to load newsletter subscribers")
		data.Subscribers = nil
		data.Notice = "Could not load subscribers from the backend."
	}

	pages.Render(ctx, w, http.StatusOK, pages.AdminFooter(ctx, data))
}

// UpdateFooter handles the POST /admin/footer form.
func (c *Console) UpdateFooter(w http.ResponseWriter, r *http.Request) {
	token, _ := auth.AccessToken(r)
	if err := r.ParseForm(); err != nil {
		pages.RedirectFlash(w, r, "/admin/footer", "error", "Invalid form submission")
		return
	}

	settings := ParseFooterForm(r)
	err := c.backend.Do(r.Context(), http.MethodPut, content.EndpointFooter, settings, nil, backend.WithBearer(token))
	if err != nil {
		l := xlog.FromContext(r.Context(), "admin")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("failed to save footer settings")
		pages.RedirectFlash(w, r, "/admin/footer", "error", "Failed to save footer settings")
		return
	}
	pages.RedirectFlash(w, r, "/admin/footer", "success", "Footer settings saved")
}

// ToggleMaintenance handles the POST /admin/maintenance form.
func (c *Console) ToggleMaintenance(w http.ResponseWriter, r *http.Request) {
	token, _ := auth.AccessToken(r)
	if err := r.ParseForm(); err != nil {
		pages.RedirectFlash(w, r, "/admin/footer", "error", "Invalid form submission")
		return
	}
	on, err := strconv.ParseBool(r.PostForm.Get("maintenance_mode"))
	if err != nil {
		pages.RedirectFlash(w, r, "/admin/footer", "error", "maintenance_mode must be true or false")
		return
	}

	if _, err := c.auth.SetMaintenance(r.Context(), token, on); err != nil {
		l := xlog.FromContext(r.Context(), "admin")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("maintenance toggle failed")
		pages.RedirectFlash(w, r, "/admin/footer", "error", "Failed to change maintenance mode")
		return
	}
	msg := "Maintenance mode turned off"
	if on {
		msg = "Maintenance mode turned on"
	}
	pages.RedirectFlash(w, r, "/admin/footer", "success", msg)
}

// ParseFooterForm reads footer settings from a submitted form. Social link
// rows with an empty URL are dropped.
func ParseFooterForm(r *http.Request) content.FooterSettings {
	fs := content.FooterSettings{
		AboutText:         strings.TrimSpace(r.PostForm.Get("about_text")),
		NewsletterHeading: strings.TrimSpace(r.PostForm.Get("newsletter_heading")),
		NewsletterEnabled: r.PostForm.Get("newsletter_enabled") == "true",
		SocialLinks:       []content.SocialLink{},
	}
	for i := 0; ; i++ {
		key := strconv.Itoa(i)
		if _, ok := r.PostForm["social_url_"+key]; !ok {
			break
		}
		link := content.SocialLink{
			Platform: strings.TrimSpace(r.PostForm.Get("social_platform_" + key)),
			URL:      strings.TrimSpace(r.PostForm.Get("social_url_" + key)),
		}
		if link.URL != "" {
			fs.SocialLinks = append(fs.SocialLinks, link)
		}
	}
	return fs
}
