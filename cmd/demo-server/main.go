// cmd/demo-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"funnelzip-demo/internal/common/aws"
	"funnelzip-demo/internal/common/config"
	"funnelzip-demo/internal/common/database"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/common/observability"
	"funnelzip-demo/internal/recordlog"
	"funnelzip-demo/internal/server"
	"funnelzip-demo/internal/submission"
	"funnelzip-demo/pkg/catalog"

	cr "funnelzip-demo/internal/handlers/demo/catalog-read"
	ds "funnelzip-demo/internal/handlers/demo/demo-session"
	ar "funnelzip-demo/internal/handlers/leads/access-request"
	ci "funnelzip-demo/internal/handlers/leads/contact-inquiry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting demo server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	checks := map[string]server.Pinger{}
	var backends recordlog.Backends

	// --- Record log backends, only when selected ---
	switch cfg.Submission.Storage.Backend {
	case config.BackendRedis:
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		backends.Redis = rdb.GetClient()
		checks["redis"] = rdb
		zapLog.Info("Redis connected successfully")

	case config.BackendPostgres:
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		backends.Postgres = pg.GetDB()
		checks["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")
	}

	records, err := recordlog.New(ctx, cfg.Submission.Storage, backends)
	if err != nil {
		zapLog.Fatal("record log init failed", zap.Error(err))
	}
	defer records.Close()

	notifier, err := buildNotifier(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	fixtures, err := catalog.Resolve(cfg.Demo.CatalogPath)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err), zap.String("path", cfg.Demo.CatalogPath))
	}

	recorder := submission.NewRecorder(submission.Options{
		Log:           records,
		Notifier:      notifier,
		Logger:        log,
		Observability: obs,
		Delay:         config.GetDuration(cfg.Submission.Delay),
		InquiryKey:    cfg.Submission.Storage.InquiryKey,
		AccessKey:     cfg.Submission.Storage.AccessKey,
	})

	// --- Handlers ---
	sessionCfg := ds.DefaultConfig()
	sessionCfg.TickInterval = config.GetDuration(cfg.Demo.TickInterval)
	sessionCfg.AutoAdvance = cfg.Demo.AutoAdvance
	sessionCfg.SessionTTL = config.GetDuration(cfg.Demo.SessionTTL)
	sessionCfg.MaxSessions = cfg.Demo.MaxSessions
	if err := sessionCfg.Validate(); err != nil {
		zapLog.Fatal("invalid demo session config", zap.Error(err))
	}
	sessions := ds.NewHandler(sessionCfg, fixtures, obs, log)
	go sessions.Run(ctx)

	inquiryCfg := ci.DefaultConfig()
	inquiryCfg.ListEnabled = cfg.Submission.ExposeLog
	accessCfg := ar.DefaultConfig()
	accessCfg.ListEnabled = cfg.Submission.ExposeLog

	separateMetrics := cfg.Server.MetricsAddress != "" && cfg.Server.MetricsAddress != cfg.Server.Address
	router := server.NewRouter(server.Options{
		RequestTimeout: config.GetDuration(cfg.Server.RequestTimeout),
		ServeMetrics:   !separateMetrics,
		Checks:         checks,
		Logger:         log,
		Handlers: []server.Registrar{
			cr.NewHandler(cr.DefaultConfig(), fixtures, log),
			sessions,
			ci.NewHandler(inquiryCfg, recorder, log),
			ar.NewHandler(accessCfg, recorder, log),
		},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	var metricsSrv *http.Server
	if separateMetrics {
		metricsSrv = &http.Server{
			Addr:              cfg.Server.MetricsAddress,
			Handler:           server.MetricsHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	stop()
	sessions.Store().CloseAll()

	zapLog.Info("Demo server stopped gracefully")
}

// buildNotifier selects the reviewer notification channel.
func buildNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (submission.Notifier, error) {
	switch cfg.Channel {
	case "", config.ChannelConsole:
		return submission.NewConsoleNotifier(log, cfg.ReviewInbox), nil
	case config.ChannelSES:
		client, err := aws.NewSESClient(ctx, cfg.AWS.Region, cfg.FromEmail)
		if err != nil {
			return nil, err
		}
		return submission.NewSESNotifier(client, cfg.ReviewInbox, log), nil
	case config.ChannelSNS:
		client, err := aws.NewSNSClient(ctx, cfg.AWS.Region, cfg.TopicARN)
		if err != nil {
			return nil, err
		}
		return submission.NewSNSNotifier(client, log), nil
	}
	return nil, fmt.Errorf("unknown notification channel %q", cfg.Channel)
}
