// Package realtime is the client side of the hosted key-value tree the storefront
// keeps its products, orders and reviews in. Backends implement Database; callers
// never see transport details.
package realtime

import "context"

// Unsubscribe stops a subscription. It is safe to call more than once.
type Unsubscribe func()

// Database is the contract every backend honours.
//
// Subscribe delivers the current value at path and then every later change. Failures,
// including a rules rejection, go to onError; after an error the subscription is dead.
// Update applies a multi-path, field scoped merge: keys of values are paths relative
// to path. Push appends value under a generated, chronologically ordered key.
type Database interface {
	Subscribe(ctx context.Context, path string, onValue func(Snapshot), onError func(error)) Unsubscribe
	Get(ctx context.Context, path string) (Snapshot, error)
	Set(ctx context.Context, path string, value any) error
	Update(ctx context.Context, path string, values map[string]any) error
	Remove(ctx context.Context, path string) error
	Push(ctx context.Context, path string, value any) (string, error)
}

func lastKey(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
