// Package reload tells running API processes to drop cached data when the
// dataset or directory files change on disk.
package reload

import (
	"context"
	"log/slog"
	"os"
	"time"

	"presence/internal/cache"
	"presence/internal/queue"
)

// MessageType marks reload notifications on the queue.
const MessageType = "reload"

// Watcher polls file modification times and publishes a reload message,
// carrying the cache key, whenever a watched file changes.
type Watcher struct {
	q      queue.Queue
	files  map[string]string // path -> cache key
	seen   map[string]time.Time
	logger *slog.Logger
}

// NewWatcher creates a watcher for files, a map of path to cache key.
func NewWatcher(q queue.Queue, files map[string]string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{q: q, files: files, seen: make(map[string]time.Time), logger: logger}
}

// Poll checks every file once and returns the number of messages published.
// The first observation of a file only records its modification time.
func (w *Watcher) Poll(ctx context.Context) (int, error) {
	published := 0
	for path, key := range w.files {
		info, err := os.Stat(path)
		if err != nil {
			w.logger.Warn("stat watched file", "path", path, "error", err)
			continue
		}
		prev, ok := w.seen[path]
		w.seen[path] = info.ModTime()
		if !ok || info.ModTime().Equal(prev) {
			continue
		}
		if err := w.q.Publish(ctx, queue.Message{Type: MessageType, Body: []byte(key)}); err != nil {
			return published, err
		}
		w.logger.Info("file changed, reload published", "path", path, "key", key)
		published++
	}
	return published, nil
}

// Run polls every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) error {
	if _, err := w.Poll(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.Poll(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("publish reload", "error", err)
			}
		}
	}
}

// Subscribe invalidates registry entries named by incoming reload messages
// until ctx is done. An empty body invalidates everything.
func Subscribe(ctx context.Context, q queue.Queue, reg *cache.Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	msgs, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	for msg := range msgs {
		if msg.Type != MessageType {
			continue
		}
		key := string(msg.Body)
		if key == "" {
			reg.InvalidateAll()
		} else {
			reg.Invalidate(key)
		}
		logger.Info("cache invalidated", "key", key)
	}
	return nil
}
