package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long loaded data is reused in production.
const DefaultTTL = 600 * time.Second

// Observer is notified of cache activity.
type Observer interface {
	Hit(key string)
	Miss(key string)
	Loaded(key string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) Hit(string) {}
func (nopObserver) Miss(string) {}
func (nopObserver) Loaded(string, time.Duration, error) {}

// Registry holds one slot per cached producer, keyed by name.
type Registry struct {
	mu    sync.Mutex
	slots map[string]*slot
	now   func() time.Time
	obs   Observer
}

// slot is locked for the whole check-and-populate sequence so concurrent
// misses on the same key run the producer once.
type slot struct {
	mu     sync.Mutex
	value  any
	stamp  time.Time
	filled bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithObserver reports hits, misses and loads to obs.
func WithObserver(obs Observer) Option {
	return func(r *Registry) {
		if obs != nil {
			r.obs = obs
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		slots: make(map[string]*slot),
		now:   time.Now,
		obs:   nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) slot(key string) *slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[key]
	if !ok {
		s = &slot{}
		r.slots[key] = s
	}
	return s
}

// Invalidate drops the entry stored under key so the next call reloads.
func (r *Registry) Invalidate(key string) {
	s := r.slot(key)
	s.mu.Lock()
	s.value, s.filled = nil, false
	s.mu.Unlock()
}

// InvalidateAll drops every stored entry.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	keys := make([]string, 0, len(r.slots))
	for k := range r.slots {
		keys = append(keys, k)
	}
	r.mu.Unlock()
	for _, k := range keys {
		r.Invalidate(k)
	}
}

// Stamp reports when the entry under key was loaded.
func (r *Registry) Stamp(key string) (time.Time, bool) {
	s := r.slot(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stamp, s.filled
}

// Wrap returns a function that calls producer at most once per ttl window and
// otherwise returns the stored result. Errors are returned to the caller and
// never stored. Every Wrap call for the same key must use the same T.
func Wrap[T any](r *Registry, key string, ttl time.Duration, producer func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		s := r.slot(key)
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.filled && r.now().Sub(s.stamp) <= ttl {
			r.obs.Hit(key)
			return s.value.(T), nil
		}
		r.obs.Miss(key)

		started := r.now()
		v, err := producer(ctx)
		r.obs.Loaded(key, r.now().Sub(started), err)
		if err != nil {
			var zero T
			return zero, err
		}
		s.value, s.stamp, s.filled = v, r.now(), true
		return v, nil
	}
}
