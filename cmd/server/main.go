package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"regscope/internal/platform/config"
	"regscope/internal/platform/httpserver"
	"regscope/internal/platform/logger"
	platformredis "regscope/internal/platform/redis"
	"regscope/internal/regulation/catalog"
	scanmetrics "regscope/internal/scan/metrics"
	"regscope/internal/scan/service"
	"regscope/internal/scan/store"
	httptransport "regscope/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("load catalog", "error", err)
		os.Exit(1)
	}
	for _, warning := range cat.Lint() {
		log.Warn("catalog lint", "finding", warning)
	}
	log.Info("catalog loaded",
		"version", cat.Version,
		"regulations", len(cat.Regulations),
		"layers", len(cat.Questionnaire),
	)

	var scanStore store.Store = store.NewInMemory()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
		scanStore = pg
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(scanmetrics.New()),
	}
	cache, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		opts = append(opts, service.WithCache(cache, cfg.CacheTTL))
	}

	svc, err := service.New(cat, scanStore, opts...)
	if err != nil {
		log.Error("build scan service", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.NewHandler(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting regscope", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
