package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fastbreak/internal/adapters/espn"
	"fastbreak/internal/adapters/http/api"
	"fastbreak/internal/adapters/notify"
	"fastbreak/internal/adapters/projections"
	"fastbreak/internal/adapters/sheets"
	app "fastbreak/internal/app"
	"fastbreak/internal/config"
	"fastbreak/internal/domain/scoring"
	"fastbreak/internal/report"
	"fastbreak/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	serve := flag.Bool("serve", false, "run as a long-lived service with an HTTP surface instead of a one-shot job")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := buildService(ctx, cfg, log)

	if !*serve {
		if _, err := svc.RunOnce(ctx); err != nil {
			log.Error(ctx, "advisory run failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	runServer(ctx, cfg, svc, log)
}

// buildService wires input sources, the core pipeline and the delivery
// channel from configuration.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) *app.Service {
	cats := cfg.CategoryList()

	opts := []app.Option{
		app.WithLogger(log),
		app.WithNormalizer(scoring.NewNormalizer(scoring.WithCategories(cats))),
		app.WithReportBuilder(report.NewBuilder(
			report.WithCategories(cats),
			report.WithDropCandidates(cfg.DropCandidates),
			report.WithTopAdds(cfg.TopAdds),
		)),
		app.WithProjectionSource(projections.NewCSVSource(cfg.ProjectionsPath,
			projections.WithCategories(cats),
			projections.WithLogger(log),
		)),
	}

	if cfg.SheetID != "" && cfg.SheetAPIKey != "" {
		sheet := sheets.NewClient(cfg.SheetID, cfg.SheetAPIKey)
		opts = append(opts,
			app.WithRosterSource(sheet.List(cfg.RosterRange)),
			app.WithWaiverSource(sheet.List(cfg.WaiverRange)),
		)
	} else {
		if cfg.RosterFile != "" {
			opts = append(opts, app.WithRosterSource(projections.NewNameFileSource(cfg.RosterFile)))
		}
		if cfg.WaiverFile != "" {
			opts = append(opts, app.WithWaiverSource(projections.NewNameFileSource(cfg.WaiverFile)))
		}
	}

	league := espn.NewClient(cfg.LeagueID, cfg.Season, espn.WithCookies(cfg.ESPNS2, cfg.ESPNSWID))
	if league.Configured() {
		opts = append(opts, app.WithLeagueSource(league, cfg.ESPNTeamID))
	} else {
		log.Info(ctx, "espn cookies not configured; skipping league fetch")
	}

	switch {
	case cfg.DryRun:
		opts = append(opts, app.WithNotifier(notify.Stdout{W: os.Stdout}))
	default:
		slack := notify.NewSlack(
			notify.WithToken(cfg.SlackToken, cfg.SlackChannel),
			notify.WithWebhook(cfg.SlackWebhookURL),
		)
		if slack.Configured() {
			opts = append(opts, app.WithNotifier(slack))
		} else {
			log.Warn(ctx, "slack not configured; reports will not be delivered")
		}
	}

	return app.New(opts...)
}

// runServer starts the periodic advisory loop and the HTTP surface,
// then blocks until shutdown.
func runServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) {
	// Compute the first snapshot before accepting traffic.
	if _, err := svc.RunOnce(ctx); err != nil {
		log.Error(ctx, "initial advisory run failed", logger.Error(err))
	}
	svc.Start(ctx, time.Duration(cfg.RunIntervalMinutes)*time.Minute)
	defer svc.Stop()

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxRankingLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
