package realtime

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shopyz-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// NotifyChannel is the LISTEN/NOTIFY channel writers announce changed collections on.
const NotifyChannel = "realtime_changes"

// pgInsufficientPrivilege is SQLSTATE 42501, raised when a role lacks a grant.
const pgInsufficientPrivilege = "42501"

// Notifier feeds collection change notifications to a Postgres database.
type Notifier interface {
	Notifications() <-chan *pq.Notification
	Close() error
}

type pqNotifier struct {
	listener *pq.Listener
}

// NewPQNotifier opens a dedicated LISTEN connection on NotifyChannel.
func NewPQNotifier(connStr string) (Notifier, error) {
	listener := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.L().Warn("realtime listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := listener.Listen(NotifyChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", NotifyChannel, err)
	}
	return &pqNotifier{listener: listener}, nil
}

func (n *pqNotifier) Notifications() <-chan *pq.Notification { return n.listener.Notify }
func (n *pqNotifier) Close() error                           { return n.listener.Close() }

// Postgres stores the tree in realtime_nodes, one JSONB row per record: the first path
// segment is the collection, the second the record key, deeper segments live inside
// the JSON value.
type Postgres struct {
	db       *sql.DB
	ids      *PushIDGenerator
	notifier Notifier

	mu      sync.Mutex
	subs    map[int]*pgSub
	nextSub int
	done    chan struct{}
}

type pgSub struct {
	parts   []string
	onValue func(Snapshot)
	onError func(error)
}

// NewPostgres wraps db. With a nil notifier subscriptions only receive their initial
// value.
func NewPostgres(db *sql.DB, notifier Notifier) *Postgres {
	p := &Postgres{
		db:       db,
		ids:      NewPushIDGenerator(),
		notifier: notifier,
		subs:     make(map[int]*pgSub),
		done:     make(chan struct{}),
	}
	if notifier != nil {
		go p.dispatch()
	}
	return p
}

// Close stops change dispatching and the notifier.
func (p *Postgres) Close() error {
	select {
	case <-p.done:
		return nil
	default:
		close(p.done)
	}
	if p.notifier != nil {
		return p.notifier.Close()
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, path string) (Snapshot, error) {
	parts, err := Split(path)
	if err != nil {
		return Snapshot{}, err
	}

	value, err := p.read(ctx, parts)
	if err != nil {
		return Snapshot{}, mapPQError(err)
	}
	return Snapshot{Key: lastKey(parts), Value: value}, nil
}

func (p *Postgres) read(ctx context.Context, parts []string) (any, error) {
	switch len(parts) {
	case 0:
		rows, err := p.db.QueryContext(ctx,
			`SELECT collection, key, value FROM realtime_nodes ORDER BY collection, key`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var root any
		for rows.Next() {
			var collection, key string
			var raw []byte
			if err := rows.Scan(&collection, &key, &raw); err != nil {
				return nil, err
			}
			v, err := decodeJSON(raw)
			if err != nil {
				return nil, err
			}
			root = assign(root, []string{collection, key}, v)
		}
		return root, rows.Err()

	case 1:
		rows, err := p.db.QueryContext(ctx,
			`SELECT key, value FROM realtime_nodes WHERE collection = $1 ORDER BY key`, parts[0])
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var node any
		for rows.Next() {
			var key string
			var raw []byte
			if err := rows.Scan(&key, &raw); err != nil {
				return nil, err
			}
			v, err := decodeJSON(raw)
			if err != nil {
				return nil, err
			}
			node = assign(node, []string{key}, v)
		}
		return node, rows.Err()

	default:
		var raw []byte
		err := p.db.QueryRowContext(ctx,
			`SELECT value FROM realtime_nodes WHERE collection = $1 AND key = $2`,
			parts[0], parts[1],
		).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := decodeJSON(raw)
		if err != nil {
			return nil, err
		}
		return lookup(v, parts[2:]), nil
	}
}

func (p *Postgres) Set(ctx context.Context, path string, value any) error {
	return p.write(ctx, path, map[string]any{"": value})
}

func (p *Postgres) Update(ctx context.Context, path string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return p.write(ctx, path, values)
}

func (p *Postgres) Remove(ctx context.Context, path string) error {
	return p.write(ctx, path, map[string]any{"": nil})
}

func (p *Postgres) Push(ctx context.Context, path string, value any) (string, error) {
	id := p.ids.Next()
	if err := p.write(ctx, Join(path, id), map[string]any{"": value}); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) write(ctx context.Context, base string, values map[string]any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "realtime"),
		zap.String("method", "write"),
		zap.String("path", base),
	)

	rels := make([]string, 0, len(values))
	for rel := range values {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	type change struct {
		parts []string
		value any
	}
	changes := make([]change, 0, len(rels))
	for _, rel := range rels {
		parts, err := Split(Join(base, rel))
		if err != nil {
			return err
		}
		if len(parts) == 0 {
			return fmt.Errorf("%w: cannot write the root", ErrInvalidPath)
		}
		v, err := normalize(values[rel])
		if err != nil {
			return err
		}
		changes = append(changes, change{parts: parts, value: v})
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return mapPQError(err)
	}
	defer tx.Rollback()

	touched := make(map[string]struct{})
	for _, c := range changes {
		if err := p.apply(ctx, tx, c.parts, c.value); err != nil {
			log.Warn("realtime write failed", zap.Error(err))
			return mapPQError(err)
		}
		touched[c.parts[0]] = struct{}{}
	}

	collections := make([]string, 0, len(touched))
	for c := range touched {
		collections = append(collections, c)
	}
	sort.Strings(collections)
	for _, c := range collections {
		if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, NotifyChannel, c); err != nil {
			return mapPQError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapPQError(err)
	}

	log.Debug("realtime write committed", zap.Int("changes", len(changes)))
	return nil
}

func (p *Postgres) apply(ctx context.Context, tx *sql.Tx, parts []string, value any) error {
	collection := parts[0]

	switch len(parts) {
	case 1:
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM realtime_nodes WHERE collection = $1`, collection); err != nil {
			return err
		}
		for _, child := range (Snapshot{Value: value}).Children() {
			if err := upsertNode(ctx, tx, collection, child.Key, child.Value); err != nil {
				return err
			}
		}
		return nil

	case 2:
		if value == nil {
			_, err := tx.ExecContext(ctx,
				`DELETE FROM realtime_nodes WHERE collection = $1 AND key = $2`, collection, parts[1])
			return err
		}
		return upsertNode(ctx, tx, collection, parts[1], value)

	default:
		var raw []byte
		err := tx.QueryRowContext(ctx,
			`SELECT value FROM realtime_nodes WHERE collection = $1 AND key = $2 FOR UPDATE`,
			collection, parts[1],
		).Scan(&raw)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		current, err := decodeJSON(raw)
		if err != nil {
			return err
		}

		next := assign(current, parts[2:], value)
		if next == nil {
			_, err := tx.ExecContext(ctx,
				`DELETE FROM realtime_nodes WHERE collection = $1 AND key = $2`, collection, parts[1])
			return err
		}
		return upsertNode(ctx, tx, collection, parts[1], next)
	}
}

func upsertNode(ctx context.Context, tx *sql.Tx, collection, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO realtime_nodes (collection, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (collection, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, collection, key, string(raw))
	return err
}

func decodeJSON(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("corrupt realtime node: %w", err)
	}
	return prune(v), nil
}

func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgInsufficientPrivilege {
		return &Error{Code: CodePermissionDenied, Message: pqErr.Message, Err: ErrPermissionDenied}
	}
	return err
}

func (p *Postgres) Subscribe(ctx context.Context, path string, onValue func(Snapshot), onError func(error)) Unsubscribe {
	parts, err := Split(path)
	if err != nil {
		onError(err)
		return func() {}
	}

	snap, err := p.Get(ctx, path)
	if err != nil {
		onError(err)
		return func() {}
	}

	sub := &pgSub{parts: parts, onValue: onValue, onError: onError}

	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = sub
	p.mu.Unlock()

	onValue(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *Postgres) dispatch() {
	ch := p.notifier.Notifications()
	for {
		select {
		case <-p.done:
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			// A nil notification means the listener reconnected and may have
			// missed changes, so every subscription is refreshed.
			collection := ""
			if n != nil {
				collection = n.Extra
			}
			p.refresh(collection)
		}
	}
}

func (p *Postgres) refresh(collection string) {
	p.mu.Lock()
	targets := make(map[int]*pgSub)
	for id, sub := range p.subs {
		if collection == "" || len(sub.parts) == 0 || sub.parts[0] == collection {
			targets[id] = sub
		}
	}
	p.mu.Unlock()

	ctx := context.Background()
	for id, sub := range targets {
		snap, err := p.Get(ctx, strings.Join(sub.parts, "/"))

		p.mu.Lock()
		_, alive := p.subs[id]
		if alive && err != nil {
			delete(p.subs, id)
		}
		p.mu.Unlock()

		if !alive {
			continue
		}
		if err != nil {
			sub.onError(err)
			continue
		}
		sub.onValue(snap)
	}
}
