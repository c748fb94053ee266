package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"presence/internal/cache"
	"presence/internal/config"
	"presence/internal/directory"
	"presence/internal/handler"
	"presence/internal/metrics"
	"presence/internal/queue"
	"presence/internal/reload"
	"presence/internal/report"
	"presence/internal/store"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := cfg.Logger()
	slog.SetDefault(logger)

	src, closeSource, err := store.OpenSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	collator, err := directory.NewCollator(cfg.CollationLocale)
	if err != nil {
		return err
	}

	reg := cache.New(cache.WithObserver(metrics.CacheObserver{}))
	svc := report.NewService(reg, cfg.CacheTTL, src, report.DirectoryFile(cfg.DataUsersXML), collator, logger)

	pages, err := handler.LoadPages(cfg.TemplatesDir)
	if err != nil {
		log.Printf("warning: no dashboard templates in %s: %v", cfg.TemplatesDir, err)
		pages = nil
	}
	h := handler.New(svc, pages)

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		redisClient := store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		h.AddHealthCheck("redis", redisClient.Healthy)
		q = queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)
	} else {
		q = queue.NewInMemory(64)
	}
	go func() {
		if err := reload.Subscribe(ctx, q, reg, logger); err != nil {
			log.Printf("reload subscriber stopped: %v", err)
		}
	}()
	if cfg.QueueBackend != "redis" {
		// No separate worker can reach an in-process queue, so watch here.
		files := store.WatchedFiles(cfg, report.AttendanceKey, report.DirectoryKey)
		watcher := reload.NewWatcher(q, files, logger)
		go func() {
			if err := watcher.Run(ctx, cfg.ReloadPoll); err != nil {
				log.Printf("reload watcher stopped: %v", err)
			}
		}()
	}

	r := handler.NewRouter(h, handler.RouterConfig{
		RateLimitPerMin: cfg.RateLimitPerMin,
		StaticDir:       cfg.StaticDir,
	})

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s (source=%s)", cfg.HTTPPort, cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
