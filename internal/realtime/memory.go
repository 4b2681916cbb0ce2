package realtime

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

// Memory is an in-process Database. Subscribers are notified synchronously, in the
// goroutine that performed the write, after the tree lock is released.
//
// Failures can be injected per path prefix to stand in for security rules or a lost
// connection.
type Memory struct {
	mu        sync.Mutex
	root      any
	subs      map[int]*memorySub
	nextSub   int
	ids       *PushIDGenerator
	readErrs  map[string]error
	writeErrs map[string]error
}

type memorySub struct {
	parts   []string
	path    string
	onValue func(Snapshot)
	closed  atomic.Bool
}

func NewMemory() *Memory {
	return &Memory{
		subs:      make(map[int]*memorySub),
		ids:       NewPushIDGenerator(),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// FailReads makes reads and subscriptions under prefix fail with err. A nil err
// clears the failure.
func (m *Memory) FailReads(prefix string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	setFailure(m.readErrs, prefix, err)
}

// FailWrites makes writes touching prefix fail with err. A nil err clears the failure.
func (m *Memory) FailWrites(prefix string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	setFailure(m.writeErrs, prefix, err)
}

// DenyWrites is shorthand for a rules rejection on every write under prefix.
func (m *Memory) DenyWrites(prefix string) {
	m.FailWrites(prefix, permissionDenied("Permission denied"))
}

func setFailure(into map[string]error, prefix string, err error) {
	prefix = strings.Trim(prefix, "/")
	if err == nil {
		delete(into, prefix)
		return
	}
	into[prefix] = err
}

func failureFor(from map[string]error, path string) error {
	for prefix, err := range from {
		if prefix == "" || path == prefix || strings.HasPrefix(path, prefix+"/") {
			return err
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, path string, onValue func(Snapshot), onError func(error)) Unsubscribe {
	parts, err := Split(path)
	if err != nil {
		onError(err)
		return func() {}
	}
	joined := strings.Join(parts, "/")

	m.mu.Lock()
	if err := failureFor(m.readErrs, joined); err != nil {
		m.mu.Unlock()
		onError(err)
		return func() {}
	}

	sub := &memorySub{parts: parts, path: joined, onValue: onValue}
	id := m.nextSub
	m.nextSub++
	m.subs[id] = sub
	snap := Snapshot{Key: lastKey(parts), Value: deepCopy(lookup(m.root, parts))}
	m.mu.Unlock()

	onValue(snap)

	return func() {
		sub.closed.Store(true)
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Memory) Get(ctx context.Context, path string) (Snapshot, error) {
	parts, err := Split(path)
	if err != nil {
		return Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := failureFor(m.readErrs, strings.Join(parts, "/")); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Key: lastKey(parts), Value: deepCopy(lookup(m.root, parts))}, nil
}

func (m *Memory) Set(ctx context.Context, path string, value any) error {
	return m.write(ctx, path, map[string]any{"": value})
}

func (m *Memory) Update(ctx context.Context, path string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return m.write(ctx, path, values)
}

func (m *Memory) Remove(ctx context.Context, path string) error {
	return m.write(ctx, path, map[string]any{"": nil})
}

func (m *Memory) Push(ctx context.Context, path string, value any) (string, error) {
	id := m.ids.Next()
	if err := m.write(ctx, Join(path, id), map[string]any{"": value}); err != nil {
		return "", err
	}
	return id, nil
}

// write applies every relative path of values under base as one atomic change.
func (m *Memory) write(ctx context.Context, base string, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	type change struct {
		parts []string
		value any
	}
	changes := make([]change, 0, len(values))
	for rel, v := range values {
		parts, err := Split(Join(base, rel))
		if err != nil {
			return err
		}
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		changes = append(changes, change{parts: parts, value: nv})
	}

	m.mu.Lock()
	for _, c := range changes {
		if err := failureFor(m.writeErrs, strings.Join(c.parts, "/")); err != nil {
			m.mu.Unlock()
			return err
		}
	}

	for _, c := range changes {
		m.root = assign(m.root, c.parts, c.value)
	}

	type delivery struct {
		sub  *memorySub
		snap Snapshot
	}
	var pending []delivery
	for _, sub := range m.subs {
		for _, c := range changes {
			if isRelated(sub.parts, c.parts) {
				pending = append(pending, delivery{
					sub:  sub,
					snap: Snapshot{Key: lastKey(sub.parts), Value: deepCopy(lookup(m.root, sub.parts))},
				})
				break
			}
		}
	}
	m.mu.Unlock()

	for _, d := range pending {
		if !d.sub.closed.Load() {
			d.sub.onValue(d.snap)
		}
	}
	return nil
}
