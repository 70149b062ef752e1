package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seedlab/internal/audit"
	"seedlab/internal/germination/adapters"
	"seedlab/internal/germination/cache"
	germinationHandler "seedlab/internal/germination/handler"
	germMetrics "seedlab/internal/germination/metrics"
	"seedlab/internal/germination/service"
	"seedlab/internal/germination/store"
	countStore "seedlab/internal/germination/store/count"
	finalStore "seedlab/internal/germination/store/final"
	normalStore "seedlab/internal/germination/store/normal"
	repetitionStore "seedlab/internal/germination/store/repetition"
	"seedlab/internal/platform/config"
	"seedlab/internal/platform/httpserver"
	"seedlab/internal/platform/logger"
	platformMetrics "seedlab/internal/platform/metrics"
	platformRedis "seedlab/internal/platform/redis"
	"seedlab/pkg/platform/tx"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		log.Error("run migrations", "error", err)
		os.Exit(1)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(germMetrics.New()),
	}

	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithMatrixCache(cache.NewMatrixCache(redisClient.Client, cfg.Redis.MatrixTTL)))
		log.Info("matrix cache enabled", "ttl", cfg.Redis.MatrixTTL)
	}

	auditWorker, closeAudit, err := buildAudit(ctx, cfg, log)
	if err != nil {
		log.Error("connect kafka", "error", err)
		os.Exit(1)
	}
	defer closeAudit()
	opts = append(opts, service.WithAuditPublisher(auditWorker))

	germination := service.New(
		countStore.NewPostgres(db),
		repetitionStore.NewPostgres(db),
		normalStore.NewPostgres(db),
		finalStore.NewPostgres(db),
		adapters.NewPostgresTestDirectory(db),
		tx.NewSQLRunner(db),
		opts...,
	)

	httpMetrics := platformMetrics.New()
	handler := germinationHandler.New(germination, log, httpMetrics)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting seedlab germination service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildAudit selects the audit pipeline. With brokers configured, events flow
// through a buffered worker into Kafka; otherwise they land in the log.
func buildAudit(ctx context.Context, cfg config.Server, log *slog.Logger) (audit.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewSlogPublisher(log), func() {}, nil
	}

	kafka, err := audit.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, nil, err
	}

	worker := audit.NewWorker(kafka, 256, log)
	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := worker.Run(workerCtx); err != nil {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	return worker, func() {
		cancel()
		<-done
		kafka.Close()
	}, nil
}
