package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"inno8-site/internal/auth"
	"inno8-site/internal/backend"
	"inno8-site/internal/config"
	"inno8-site/internal/content"
	xlog "inno8-site/internal/log"
	"inno8-site/internal/site"
	"inno8-site/internal/ui"
)

func main() {
	// Missing .env is fine: production relies on real env vars
	_ = godotenv.Load()

	ui.PrintBanner()

	cfg := config.Load()
	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}

	if err := cfg.Validate(); err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}

	xlog.Configure(xlog.Config{Level: cfg.Env.LogLevel, Service: "inno8-site"})
	logger := xlog.WithComponent("main")

	ui.LogGroup("Configuration")
	ui.LogGroupItem("Domain", cfg.Env.Domain)
	ui.LogGroupItem("Listen", cfg.Listen)
	ui.LogGroupItem("Backend", cfg.BackendURL)
	ui.LogGroupItem("Maintenance poll", cfg.MaintenancePollInterval().String())
	ui.LogGroupItem("Contact limit", strconv.Itoa(cfg.ContactRateLimit)+"/min per IP")
	ui.LogGroupItem("Login limit", strconv.Itoa(cfg.LoginRateLimitRPM)+"/min per IP")
	ui.LogGroupEnd()

	fallback, err := content.LoadFallback()
	if err != nil {
		ui.LogStatus("error", "Fallback content is invalid: "+err.Error())
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var creds *auth.MetricsCredentials
	if cfg.Env.MetricsUser != "" {
		creds = &auth.MetricsCredentials{User: cfg.Env.MetricsUser, PasswordHash: cfg.Env.MetricsPasswordHash}
	}
	metrics := site.NewMetricsServer(cfg.MetricsListen, creds)
	metrics.Start()
	ui.LogStatus("info", "Metrics: http://localhost"+cfg.MetricsListen+"/metrics")

	go func() {
		<-ctx.Done()
		ui.LogGracefulShutdown()
		if err := metrics.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("metrics shutdown")
		}
	}()

	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout())
	srv := site.NewServer(cfg, client, content.NewCatalog(fallback))
	if err := srv.Start(ctx); err != nil {
		ui.LogStatus("error", "Server failed: "+err.Error())
		logger.Error().Err(err).Msg("site server stopped")
		os.Exit(1)
	}
	ui.PrintFooter("Bye.")
}
