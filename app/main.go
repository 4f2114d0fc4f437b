package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/lysyi3m/realty-desk/app/api"
	"github.com/lysyi3m/realty-desk/app/cfg"
	"github.com/lysyi3m/realty-desk/app/database"
	"github.com/lysyi3m/realty-desk/app/feed"
	"github.com/lysyi3m/realty-desk/app/format"
	"github.com/lysyi3m/realty-desk/app/invest"
	"github.com/lysyi3m/realty-desk/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting Realty Desk", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		return fmt.Errorf("failed to load feed configurations: %w", err)
	}
	slog.Info("Feed configurations loaded", "dir", appCfg.FeedsDir, "count", configCache.GetConfigCount())

	scenarios := invest.NewScenarioCache(appCfg.ScenariosDir)
	if err := scenarios.Run(); err != nil {
		return fmt.Errorf("failed to load scenarios: %w", err)
	}
	slog.Info("Scenarios loaded", "dir", appCfg.ScenariosDir, "count", len(scenarios.GetScenarios()))

	feedRepo := database.NewFeedRepository(db)
	postRepo := database.NewPostRepository(db)
	fetcher := feed.NewFetcher(feed.NewHTTPClient(), appCfg.UserAgent)
	extractor := feed.NewExtractor()

	scheduler := tasks.NewScheduler(configCache, feedRepo, postRepo, fetcher, extractor,
		time.Duration(appCfg.SchedulerInterval)*time.Second, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	handler := api.NewHandler(api.Dependencies{
		FeedRepo:    feedRepo,
		PostRepo:    postRepo,
		ConfigCache: configCache,
		Scenarios:   scenarios,
		Scheduler:   scheduler,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Formatter:   format.NewFormatter(appCfg.Locale, appCfg.CurrencySymbol),
		Version:     appCfg.Version,
	})

	var limiter *api.RateLimiter
	if appCfg.RateLimit > 0 {
		limiter = api.NewRateLimiter(rate.Limit(appCfg.RateLimit), max(appCfg.RateBurst, 1))
	}

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey, limiter),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "base_url", appCfg.BaseUrl)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case runErr = <-serverErr:
	}

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	return runErr
}
