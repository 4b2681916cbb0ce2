package session

import (
	"context"
	"sync"
	"time"

	"shopyz-be/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

type ctxKey struct{}

// WithState stores the session state in ctx.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session state stored by WithState.
func FromContext(ctx context.Context) (*State, error) {
	s, ok := ctx.Value(ctxKey{}).(*State)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

const (
	DefaultCapacity = 10_000
	DefaultIdleTTL  = 30 * time.Minute
)

// Manager keeps the live State of recently active sessions, loading it from storage on
// first use. Sessions idle past the TTL or pushed out by newer ones are flushed and
// dropped; their next request loads them again.
type Manager struct {
	storage  Storage
	capacity int
	ttl      time.Duration

	mu     sync.Mutex
	states *expirable.LRU[string, *State]
}

type ManagerOption func(*Manager)

// WithCapacity bounds how many sessions stay in memory.
func WithCapacity(n int) ManagerOption {
	return func(m *Manager) {
		m.capacity = n
	}
}

// WithIdleTTL sets how long an unused session stays in memory.
func WithIdleTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.ttl = d
	}
}

func NewManager(storage Storage, opts ...ManagerOption) *Manager {
	m := &Manager{
		storage:  storage,
		capacity: DefaultCapacity,
		ttl:      DefaultIdleTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.states = expirable.NewLRU[string, *State](m.capacity, evict, m.ttl)
	return m
}

func evict(id string, s *State) {
	s.Flush()
	logger.L().Debug("session evicted", zap.String("session_id", id))
}

func (m *Manager) Get(ctx context.Context, id string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.states.Get(id); ok {
		// re-adding renews the idle deadline
		m.states.Add(id, s)
		return s
	}
	// an expired entry may linger until the next purge; flush it before reloading
	m.states.Remove(id)
	s := Load(ctx, m.storage, id)
	m.states.Add(id, s)
	return s
}

// Flush waits for every live session's pending writes.
func (m *Manager) Flush() {
	for _, s := range m.states.Values() {
		s.Flush()
	}
}
