// Package syncer keeps typed, in-memory mirrors of realtime subscriptions and runs
// optimistic writes against them.
package syncer

import (
	"context"
	"sync"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/realtime"

	"go.uber.org/zap"
)

// Strategy decides what a mirror does when its subscription fails.
type Strategy int

const (
	// UseFallback replaces the list with the configured static dataset.
	UseFallback Strategy = iota
	// Propagate keeps the last list and records the error for Err.
	Propagate
)

func (s Strategy) String() string {
	if s == Propagate {
		return "propagate"
	}
	return "use_fallback"
}

// Config describes one mirror.
type Config[T any] struct {
	Path     string
	Decode   func(realtime.Snapshot) []T
	Strategy Strategy
	Fallback []T
	// EmptyAsFallback serves Fallback while the remote path holds no data.
	EmptyAsFallback bool
}

// Mirror holds the latest decoded list for a path.
type Mirror[T any] struct {
	cfg Config[T]
	db  realtime.Database

	mu     sync.RWMutex
	items  []T
	err    error
	closed bool
	unsub  realtime.Unsubscribe
	// bumped on every value taken from the remote side
	version uint64

	ready     chan struct{}
	readyOnce sync.Once
}

// NewMirror subscribes to cfg.Path. The first delivery may happen before it returns.
func NewMirror[T any](ctx context.Context, db realtime.Database, cfg Config[T]) *Mirror[T] {
	m := &Mirror[T]{
		cfg:   cfg,
		db:    db,
		ready: make(chan struct{}),
	}

	unsub := db.Subscribe(ctx, cfg.Path, m.onValue, m.onError)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		unsub()
		return m
	}
	m.unsub = unsub
	m.mu.Unlock()
	return m
}

func (m *Mirror[T]) decode(snap realtime.Snapshot) []T {
	var items []T
	if snap.Exists() {
		items = m.cfg.Decode(snap)
	}
	if len(items) == 0 && m.cfg.EmptyAsFallback {
		items = clone(m.cfg.Fallback)
	}
	return items
}

func (m *Mirror[T]) onValue(snap realtime.Snapshot) {
	items := m.decode(snap)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.items = items
	m.err = nil
	m.version++
	m.mu.Unlock()

	m.markReady()
}

// reload reads the path once and takes the result unless a subscription delivery
// landed while the read was in flight.
func (m *Mirror[T]) reload(ctx context.Context) error {
	m.mu.RLock()
	seen := m.version
	m.mu.RUnlock()

	snap, err := m.db.Get(ctx, m.cfg.Path)
	if err != nil {
		return err
	}
	items := m.decode(snap)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.version != seen {
		return nil
	}
	m.items = items
	m.version++
	return nil
}

func (m *Mirror[T]) onError(err error) {
	log := logger.L().With(
		zap.String("layer", "syncer"),
		zap.String("path", m.cfg.Path),
		zap.String("strategy", m.cfg.Strategy.String()),
	)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	switch m.cfg.Strategy {
	case UseFallback:
		log.Warn("subscription failed, serving fallback data", zap.Error(err))
		m.items = clone(m.cfg.Fallback)
		m.version++
	default:
		log.Error("subscription failed", zap.Error(err))
		m.err = err
	}
	m.mu.Unlock()

	m.markReady()
}

func (m *Mirror[T]) markReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}

// Wait blocks until the first value or error has been delivered.
func (m *Mirror[T]) Wait(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Items returns a copy of the current list.
func (m *Mirror[T]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.items)
}

// Err returns the subscription error recorded under Propagate.
func (m *Mirror[T]) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Mutate applies fn to a copy of the list under the lock and returns the list as it
// was before.
func (m *Mirror[T]) Mutate(fn func([]T) []T) []T {
	prev, _ := m.mutate(fn)
	return prev
}

func (m *Mirror[T]) mutate(fn func([]T) []T) ([]T, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := clone(m.items)
	m.items = fn(clone(m.items))
	return prev, m.version
}

// restore puts prev back unless the remote side delivered since version.
func (m *Mirror[T]) restore(prev []T, version uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != version {
		return false
	}
	m.items = clone(prev)
	return true
}

// Close ends the subscription. Later deliveries are ignored.
func (m *Mirror[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	unsub := m.unsub
	m.unsub = nil
	m.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	m.markReady()
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
