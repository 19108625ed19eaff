package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-event-reminder/internal/config"
	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/handler"
	"github.com/KasumiMercury/primind-event-reminder/internal/health"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/database"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/directory"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/ledger"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/mailer"
	"github.com/KasumiMercury/primind-event-reminder/internal/infra/tickrecorder"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-event-reminder/internal/scheduler"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/dispatch"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/retry"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/schedule"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	obs.SetLevel(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	dispatchMetrics, err := metrics.NewDispatchMetrics()
	if err != nil {
		slog.Error("failed to initialize dispatch metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := tickrecorder.NewRecorder(ctx, tickrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize tick result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close tick result recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "database.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	var redisClient *redis.Client
	if cfg.LedgerBackend == config.LedgerBackendRedis {
		redisClient, err = initRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect redis",
				slog.String("event", "redis.connect.fail"),
				slog.String("error", err.Error()),
			)
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		slog.Info("redis connected",
			slog.String("addr", cfg.Redis.Addr),
		)
	}

	dispatchLedger, err := initLedger(ctx, cfg, db, redisClient)
	if err != nil {
		slog.Error("failed to initialize dispatch ledger", slog.String("error", err.Error()))
		return 1
	}

	dispatchService := dispatch.NewService(
		directory.NewUserDirectory(db),
		directory.NewEventDirectory(db),
		dispatchLedger,
		initDelivery(cfg),
		dispatch.Config{
			Window: schedule.Window{
				PollInterval: cfg.Dispatch.PollInterval,
				GracePeriod:  cfg.Dispatch.GracePeriod,
			},
			ResendDelay:     cfg.Dispatch.ResendDelay,
			DeliveryTimeout: cfg.Dispatch.DeliveryTimeout,
			MarkSentRetry:   retry.Fixed(retry.MarkSentAttempts, cfg.Dispatch.MarkSentBackoff),
			Workers:         cfg.Dispatch.Workers,
			Location:        cfg.Location,
		},
		dispatchMetrics,
		resultRecorder,
	)

	clock := clockwork.NewRealClock()
	dispatchHandler := handler.NewDispatchHandler(dispatchService, clock)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("event-reminder"),
		TracerName:  "github.com/KasumiMercury/primind-event-reminder/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reminders/dispatch", dispatchHandler.HandleDispatch)
	}

	var wg sync.WaitGroup
	if cfg.SchedulerEnabled {
		sched := scheduler.New(dispatchService, clock, cfg.Dispatch.PollInterval)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sched.Run(ctx)
		}()
	} else {
		slog.Info("scheduler disabled, ticks run only through the dispatch endpoint")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("ledger_backend", cfg.LedgerBackend),
			slog.String("timezone", cfg.TimezoneName),
			slog.Duration("poll_interval", cfg.Dispatch.PollInterval),
			slog.Duration("grace_period", cfg.Dispatch.GracePeriod),
			slog.Duration("resend_delay", cfg.Dispatch.ResendDelay),
			slog.Int("dispatch_workers", cfg.Dispatch.Workers),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
		exitCode = 1
	}

	// An in-flight tick finishes its post-delivery writes before exit.
	wg.Wait()

	slog.Info("server exited", slog.Int("exit_code", exitCode))
	return exitCode
}

func initRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

func initLedger(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (domain.DispatchLedger, error) {
	switch cfg.LedgerBackend {
	case config.LedgerBackendRedis:
		slog.Info("dispatch ledger initialized", slog.String("type", "redis"))
		return ledger.NewRedisLedger(redisClient), nil
	case config.LedgerBackendMemory:
		slog.Warn("dispatch ledger is in memory, records are lost on restart")
		return ledger.NewMemoryLedger(), nil
	default:
		gormLedger := ledger.NewGormLedger(db)
		if cfg.Database.AutoMigrate {
			if err := gormLedger.AutoMigrate(ctx); err != nil {
				return nil, err
			}
		}
		slog.Info("dispatch ledger initialized", slog.String("type", "postgres"))
		return gormLedger, nil
	}
}

func initDelivery(cfg *config.Config) domain.DeliveryAdapter {
	if cfg.Mail.RelayURL == "" {
		slog.Warn("MAIL_RELAY_URL not set, reminders are written to the log only")
		return mailer.NewLogSender(cfg.Mail.From, cfg.Location)
	}

	slog.Info("mail relay initialized", slog.String("url", cfg.Mail.RelayURL))
	return mailer.NewRelayClient(mailer.RelayConfig{
		BaseURL:  cfg.Mail.RelayURL,
		Token:    cfg.Mail.RelayToken,
		From:     cfg.Mail.From,
		Location: cfg.Location,
	})
}
