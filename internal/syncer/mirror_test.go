package syncer

import (
	"context"
	"errors"
	"testing"

	"shopyz-be/internal/metrics"
	"shopyz-be/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Title string
}

func decodeItems(snap realtime.Snapshot) []item {
	var out []item
	for _, c := range snap.Children() {
		title, _ := c.Child("title").Value.(string)
		out = append(out, item{ID: c.Key, Title: title})
	}
	return out
}

var fallbackItems = []item{{ID: "f1", Title: "Fallback"}}

func TestMirror_FollowsSubscription(t *testing.T) {
	ctx := context.Background()
	db := realtime.NewMemory()
	require.NoError(t, db.Set(ctx, "products/p1/title", "Tee"))

	m := NewMirror(ctx, db, Config[item]{Path: "products", Decode: decodeItems})
	defer m.Close()
	require.NoError(t, m.Wait(ctx))

	assert.Equal(t, []item{{ID: "p1", Title: "Tee"}}, m.Items())

	require.NoError(t, db.Set(ctx, "products/p2/title", "Jacket"))
	assert.Len(t, m.Items(), 2)
	assert.NoError(t, m.Err())
}

func TestMirror_EmptyAsFallback(t *testing.T) {
	ctx := context.Background()
	db := realtime.NewMemory()

	m := NewMirror(ctx, db, Config[item]{
		Path:            "products",
		Decode:          decodeItems,
		Fallback:        fallbackItems,
		EmptyAsFallback: true,
	})
	defer m.Close()

	assert.Equal(t, fallbackItems, m.Items())

	require.NoError(t, db.Set(ctx, "products/p1/title", "Tee"))
	assert.Equal(t, []item{{ID: "p1", Title: "Tee"}}, m.Items())
}

func TestMirror_ErrorStrategies(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("offline")

	t.Run("use fallback", func(t *testing.T) {
		db := realtime.NewMemory()
		db.FailReads("products", boom)

		m := NewMirror(ctx, db, Config[item]{
			Path:     "products",
			Decode:   decodeItems,
			Strategy: UseFallback,
			Fallback: fallbackItems,
		})
		defer m.Close()

		assert.Equal(t, fallbackItems, m.Items())
		assert.NoError(t, m.Err())
	})

	t.Run("propagate", func(t *testing.T) {
		db := realtime.NewMemory()
		db.FailReads("orders", boom)

		m := NewMirror(ctx, db, Config[item]{
			Path:     "orders",
			Decode:   decodeItems,
			Strategy: Propagate,
			Fallback: fallbackItems,
		})
		defer m.Close()

		assert.Empty(t, m.Items())
		assert.ErrorIs(t, m.Err(), boom)
	})
}

func TestMirror_CloseStopsUpdates(t *testing.T) {
	ctx := context.Background()
	db := realtime.NewMemory()

	m := NewMirror(ctx, db, Config[item]{Path: "products", Decode: decodeItems})
	m.Close()
	m.Close()

	require.NoError(t, db.Set(ctx, "products/p1/title", "Tee"))
	assert.Empty(t, m.Items())
	assert.NoError(t, m.Wait(ctx))
}

func TestMirror_ItemsAreCopies(t *testing.T) {
	ctx := context.Background()
	db := realtime.NewMemory()
	require.NoError(t, db.Set(ctx, "products/p1/title", "Tee"))

	m := NewMirror(ctx, db, Config[item]{Path: "products", Decode: decodeItems})
	defer m.Close()

	items := m.Items()
	items[0].Title = "changed"
	assert.Equal(t, "Tee", m.Items()[0].Title)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	appendLocal := func(items []item) []item {
		return append(items, item{ID: "new", Title: "New"})
	}

	newMirror := func(t *testing.T) (*Mirror[item], *realtime.Memory) {
		db := realtime.NewMemory()
		require.NoError(t, db.Set(ctx, "products/p1/title", "Tee"))
		m := NewMirror(ctx, db, Config[item]{Path: "products", Decode: decodeItems})
		t.Cleanup(m.Close)
		return m, db
	}

	t.Run("applied remotely", func(t *testing.T) {
		m, db := newMirror(t)
		before := metrics.Default.Counter("sync_applied_remotely").Load()

		outcome, err := Apply(ctx, m, appendLocal, func(ctx context.Context) error {
			return db.Set(ctx, "products/new/title", "New")
		})
		require.NoError(t, err)
		assert.Equal(t, AppliedRemotely, outcome)
		assert.Len(t, m.Items(), 2)
		assert.Equal(t, before+1, metrics.Default.Counter("sync_applied_remotely").Load())
	})

	t.Run("permission denied keeps the local change", func(t *testing.T) {
		m, db := newMirror(t)
		db.DenyWrites("products")

		outcome, err := Apply(ctx, m, appendLocal, func(ctx context.Context) error {
			return db.Set(ctx, "products/new/title", "New")
		})
		require.Error(t, err)
		assert.Equal(t, AppliedLocallyOnly, outcome)
		assert.Equal(t, []item{{ID: "p1", Title: "Tee"}, {ID: "new", Title: "New"}}, m.Items())
	})

	t.Run("other failures roll back", func(t *testing.T) {
		m, _ := newMirror(t)
		boom := errors.New("network down")

		outcome, err := Apply(ctx, m, appendLocal, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, RolledBack, outcome)
		assert.Equal(t, []item{{ID: "p1", Title: "Tee"}}, m.Items())
	})

	t.Run("rollback keeps a delivery that arrived during the write", func(t *testing.T) {
		m, db := newMirror(t)
		boom := errors.New("network down")

		outcome, err := Apply(ctx, m, appendLocal, func(ctx context.Context) error {
			require.NoError(t, db.Set(ctx, "products/p2/title", "Hoodie"))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, RolledBack, outcome)
		assert.Equal(t, []item{{ID: "p1", Title: "Tee"}, {ID: "p2", Title: "Hoodie"}}, m.Items())
	})

	t.Run("rollback restores when the path cannot be read", func(t *testing.T) {
		m, db := newMirror(t)
		boom := errors.New("network down")
		db.FailReads("products", boom)

		outcome, err := Apply(ctx, m, appendLocal, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, RolledBack, outcome)
		assert.Equal(t, []item{{ID: "p1", Title: "Tee"}}, m.Items())
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied_remotely", AppliedRemotely.String())
	assert.Equal(t, "applied_locally_only", AppliedLocallyOnly.String())
	assert.Equal(t, "rolled_back", RolledBack.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
