package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"inno8-site/internal/backend"
	"inno8-site/internal/contact"
	xlog "inno8-site/internal/log"
	"inno8-site/internal/pages"
)

// ErrInvalidEmail is returned when a sign-up address fails the email rule.
var ErrInvalidEmail = errors.New("invalid email address")

// Subscribe registers email with the backend newsletter list.
func (c *Console) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !contact.ValidateField(contact.FieldEmail, email) {
		return ErrInvalidEmail
	}
	body := map[string]string{"email": email}
	if err := c.backend.Do(ctx, http.MethodPost, EndpointSubscribe, body, nil); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// Newsletter handles the public POST /newsletter form and redirects back to
// the page it came from.
func (c *Console) Newsletter(w http.ResponseWriter, r *http.Request) {
	back := "/"
	if ref := r.Referer(); ref != "" {
		if u, err := r.URL.Parse(ref); err == nil && u.Host == r.Host && u.Path != "" {
			back = u.Path
		}
	}

	if err := r.ParseForm(); err != nil {
		pages.RedirectFlash(w, r, back, "error", "Invalid form submission")
		return
	}

	err := c.Subscribe(r.Context(), r.PostForm.Get("email"))
	switch {
	case err == nil:
		MetricNewsletterSignups.WithLabelValues("ok").Inc()
		pages.RedirectFlash(w, r, back, "success", "Thanks for subscribing!")
	case errors.Is(err, ErrInvalidEmail):
		MetricNewsletterSignups.WithLabelValues("invalid").Inc()
		pages.RedirectFlash(w, r, back, "error", "Please enter a valid email address")
	default:
		MetricNewsletterSignups.WithLabelValues("failed").Inc()
		l := xlog.FromContext(r.Context(), "admin")
		l.Warn().Err(err).Str("kind", backend.Kind(err)).Msg("newsletter signup failed")
		pages.RedirectFlash(w, r, back, "error", "Subscription failed, please try again later")
	}
}
