package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"presence/internal/config"
	"presence/internal/dirclient"
	"presence/internal/queue"
	"presence/internal/reload"
	"presence/internal/report"
	"presence/internal/store"
)

// Worker watches the dataset and directory files and publishes reload
// notifications for API processes sharing the redis queue.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.QueueBackend != "redis" {
		log.Fatalf("worker needs QUEUE_BACKEND=redis, got %q", cfg.QueueBackend)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		log.Printf("WARNING: redis at %s not reachable, publishing will retry each poll", cfg.RedisAddr)
	}
	q := queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)

	files := store.WatchedFiles(cfg, report.AttendanceKey, report.DirectoryKey)

	if cfg.DirectoryURL != "" {
		go syncDirectory(ctx, dirclient.New(cfg.DirectoryURL), cfg.DataUsersXML, cfg.DirectorySync)
	}

	watcher := reload.NewWatcher(q, files, cfg.Logger())
	log.Printf("worker started, polling %d file(s) every %s", len(files), cfg.ReloadPoll)
	if err := watcher.Run(ctx, cfg.ReloadPoll); err != nil {
		log.Fatalf("watcher failed: %v", err)
	}
	log.Println("worker stopped")
}

// syncDirectory refreshes the local users XML every interval. The watcher
// picks up the new file and publishes the reload.
func syncDirectory(ctx context.Context, c *dirclient.Client, path string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		written, err := c.Sync(ctx, path)
		switch {
		case err != nil:
			log.Printf("directory sync failed: %v", err)
		case written:
			log.Printf("directory updated from %s", c.URL)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
