// Package site assembles the public site, the JSON API and the admin console
// behind one chi router.
package site

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"inno8-site/internal/admin"
	"inno8-site/internal/auth"
	"inno8-site/internal/backend"
	"inno8-site/internal/config"
	"inno8-site/internal/contact"
	"inno8-site/internal/content"
	xlog "inno8-site/internal/log"
	"inno8-site/internal/maintenance"
	"inno8-site/internal/theme"
	"inno8-site/internal/ui"
)

//go:embed static
var staticFiles embed.FS

// Server is the site HTTP server
type Server struct {
	Config *config.Config

	client  *backend.Client
	catalog *content.Catalog
	palette *theme.Store
	poller  *maintenance.Poller
	auth    *auth.Proxy
	console *admin.Console
	// One outstanding contact submission per client across both routes.
	submissions *contact.Guard

	router     chi.Router
	httpServer *http.Server
}

// NewServer wires the site's collaborators around one backend client.
func NewServer(cfg *config.Config, client *backend.Client, catalog *content.Catalog) *Server {
	env := cfg.Env
	if env == nil {
		env = &config.EnvConfig{}
	}

	s := &Server{
		Config:  cfg,
		client:  client,
		catalog: catalog,
		palette: theme.NewStore(),
		poller:  maintenance.NewPoller(client, cfg.MaintenancePollInterval()),

		submissions: contact.NewGuard(),
	}

	s.auth = auth.NewProxy(client, auth.CookieConfig{
		Secure: env.CookieSecure,
		Domain: env.CookieDomain,
	}, cfg.LoginRateLimitRPM)
	// The admin switch takes effect locally without waiting for the next poll.
	s.auth.OnMaintenance = s.poller.Set

	s.console = admin.NewConsole(client, s.auth, catalog, s.poller)
	s.router = s.routes(env.AllowedOrigin)

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Palette returns the palette store.
func (s *Server) Palette() *theme.Store {
	return s.palette
}

// Maintenance returns the maintenance poller.
func (s *Server) Maintenance() *maintenance.Poller {
	return s.poller
}

func (s *Server) routes(allowedOrigin string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(securityHeaders(""))
	r.Use(metricsMiddleware)
	r.Use(xlog.Middleware())
	r.Use(middleware.Compress(5, "text/html", "text/css", "application/javascript", "application/json"))
	r.Use(theme.Middleware(s.palette))
	r.Use(maintenance.Middleware(s.poller, http.HandlerFunc(s.maintenancePage)))

	// Contact, API contact and newsletter share one per-IP budget.
	limit := submissionLimit(s.Config.ContactRateLimit)

	r.Get("/", s.home)
	r.Get("/about", s.about)
	r.Get("/services", s.services)
	r.Get("/projects", s.projects)
	r.Get("/blogs", s.blogs)
	r.Get("/contact", s.contactPage)
	r.With(limit).Post("/contact", s.submitContact)
	r.With(limit).Post("/newsletter", s.console.Newsletter)

	r.Get("/healthz", s.healthz)
	r.Get("/robots.txt", robots)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors(allowedOrigin))
		r.Get("/palette", s.paletteAPI)
		r.Get("/maintenance", maintenance.StatusHandler(s.poller))
		r.With(limit).Post("/contact", contact.APIHandler(s.client, s.submissions))

		r.Post("/auth/login", s.auth.Login)
		r.Post("/auth/logout", s.auth.Logout)
		r.Get("/auth/check", s.auth.Check)
		r.Post("/admin/maintenance", s.auth.ToggleMaintenance)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Get("/login", s.console.LoginPage)
		r.Post("/login", s.console.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession("/admin/login"))
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/footer", http.StatusSeeOther)
			})
			r.Get("/footer", s.console.Footer)
			r.Post("/footer", s.console.UpdateFooter)
			r.Post("/maintenance", s.console.ToggleMaintenance)
			r.Post("/logout", s.console.Logout)
		})
	})

	r.NotFound(s.notFound)
	return r
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Listen, err)
	}
	ui.LogStatus("info", "Site listening on "+s.Config.Listen)
	return s.Serve(ctx, ln)
}

// Serve starts the palette resolution and the maintenance poll, then serves
// ln until ctx is done and in-flight requests have drained.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.palette.Resolve(ctx, theme.RemoteSource{Client: s.client, Endpoint: theme.EndpointPalette})
	go s.poller.Run(ctx)

	drained := make(chan error, 1)
	go func() { drained <- s.watchShutdown(ctx) }()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("site server failed: %w", err)
	}
	return <-drained
}

// watchShutdown waits for ctx cancellation then drains the server.
func (s *Server) watchShutdown(ctx context.Context) error {
	<-ctx.Done()
	ui.LogStatus("info", "Shutting down site server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout())
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("site shutdown: %w", err)
	}
	return nil
}
