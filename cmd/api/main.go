package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-platform/internal/audit"
	"booking-platform/internal/auth"
	"booking-platform/internal/business"
	"booking-platform/internal/catalog"
	"booking-platform/internal/config"
	"booking-platform/internal/httpapi"
	"booking-platform/internal/metrics"
	"booking-platform/internal/migrations"
	"booking-platform/internal/ratelimit"
	"booking-platform/internal/users"
	"booking-platform/pkg/logger"
	"booking-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := utils.RunMigrations(rootCtx, db, migrations.FS); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collectorsSet := metrics.New(reg)

	userRepo := users.NewPostgresRepository(db)
	authSvc := auth.NewService(users.NewDirectory(userRepo), tokens, log)
	auditSvc := audit.NewService(audit.NewPostgresRepo(db), log)
	bizSvc := business.NewService(business.NewPostgresStore(db), auditSvc, log)

	r, err := newRouter(routerDeps{
		Log: log,
		Handlers: httpapi.Handlers{
			Auth:     authSvc,
			Sessions: auth.NewSessionTransport(cfg.Auth.SecureCookies),
			Users:    users.NewService(userRepo),
			Business: bizSvc,
			Catalog:  catalog.NewCatalog(catalog.NewPostgresRepository(db), bizSvc),
			Metrics:  collectorsSet,
		},
		Health:      httpapi.Health{DB: db, Redis: rdb},
		Limiter:     ratelimit.New(rdb),
		Metrics:     collectorsSet,
		Gatherer:    reg,
		CORSOrigins: cfg.App.CORSOrigins,
	})
	if err != nil {
		log.Error("router init failed", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
