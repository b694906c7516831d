package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/archive"
	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/observability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, seedDemo bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		repos routes.Repositories
		sink  audit.Sink
	)
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.New()
		if seedDemo {
			seed(store, log)
		}
		repos = routes.MemoryRepositories(store)
		sink = audit.NewZapSink(log)
		log.Warn("using in-memory storage, data is lost on exit")
	default:
		db, err := dbpkg.Open(cfg)
		if err != nil {
			return err
		}
		repos = routes.GormRepositories(db)
		sink = audit.New(db)
	}

	auditDispatcher := audit.NewDispatcher(sink, log)
	defer auditDispatcher.Close()

	// ======================================================
	// SIDE CHANNELS
	// ======================================================
	svc := routes.Services{
		Audit: auditDispatcher,
		Clock: timezone.NewClock(cfg.ClinicTimezone),
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, notifications will be dropped until it recovers",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()

		notifier := notify.NewNotifier(notify.NewRedisPublisher(client), cfg.NotifyChannel, log)
		defer notifier.Close()
		svc.Notifier = notifier
	}

	if cfg.ArchiveBucket != "" {
		client := archive.NewS3Client(archive.ClientOptions{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.AWSEndpoint,
		})
		svc.Archiver = archive.NewS3Archiver(client, cfg.ArchiveBucket)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svc.Gatherer = reg
	svc.Obs = observability.Observer{Metrics: metrics.NewBookingMetrics(reg), Log: log}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, cfg, log, repos, svc)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
