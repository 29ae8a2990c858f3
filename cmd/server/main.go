package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"legisync/internal/ai"
	"legisync/internal/civic"
	"legisync/internal/config"
	"legisync/internal/publisher"
	"legisync/internal/scheduler"
	"legisync/internal/server"
	"legisync/internal/service"
	"legisync/internal/source"
	"legisync/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize stores
	billStore := postgres.NewBillStore(db)
	syncLogStore := postgres.NewSyncLogStore(db)

	// Initialize RabbitMQ publisher; syncing works without it, so a broker
	// outage only costs the downstream events.
	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, continuing without event publishing", "error", err)
		} else {
			defer rabbitMQ.Close()
			pub = rabbitMQ
		}
	}

	// Initialize source adapters
	clientCfg := source.ClientConfig{
		Timeout:        cfg.Sources.Timeout,
		MaxAttempts:    cfg.Sources.Retry.MaxAttempts,
		InitialBackoff: cfg.Sources.Retry.InitialBackoff,
		MaxBackoff:     cfg.Sources.Retry.MaxBackoff,
	}

	sources := []service.Source{
		source.NewCongress(source.CongressConfig{
			BaseURL:  cfg.Sources.Congress.BaseURL,
			APIKey:   cfg.Sources.Congress.APIKey,
			Congress: cfg.Sources.Congress.Congress,
			PageSize: cfg.Sources.Congress.PageSize,
		}, clientCfg, logger),
		source.NewGovTrack(source.GovTrackConfig{
			BaseURL:      cfg.Sources.GovTrack.BaseURL,
			PageSize:     cfg.Sources.GovTrack.PageSize,
			LookbackDays: cfg.Sources.GovTrack.LookbackDays,
		}, clientCfg, logger),
		source.NewOpenStates(source.OpenStatesConfig{
			BaseURL:       cfg.Sources.OpenStates.BaseURL,
			APIKey:        cfg.Sources.OpenStates.APIKey,
			Jurisdictions: cfg.Sources.OpenStates.Jurisdictions,
			PerPage:       cfg.Sources.OpenStates.PerPage,
		}, clientCfg, logger),
	}

	syncService := service.NewSyncService(billStore, syncLogStore, pub, logger)
	orchestrator := service.NewOrchestrator(syncService, sources, logger)

	gateway := ai.New(ai.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, logger)

	civicClient := civic.New(civic.Config{
		BaseURL: cfg.Civic.BaseURL,
		APIKey:  cfg.Civic.APIKey,
		Timeout: cfg.Civic.Timeout,
	}, logger)

	handler := server.NewHandler(
		billStore,
		syncLogStore,
		orchestrator,
		gateway,
		civicClient,
		cfg.Server.SyncToken,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if cfg.Sync.Interval > 0 {
		sched := scheduler.NewScheduler(orchestrator, cfg.Sync.Interval, logger)
		go func() {
			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler error", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting legisync server",
		"addr", cfg.Server.Addr,
		"sources", len(sources),
		"sync_interval", cfg.Sync.Interval,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
