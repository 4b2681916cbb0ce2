package product

import (
	"context"
	"errors"
	"testing"

	"shopyz-be/internal/realtime"
	"shopyz-be/internal/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
	db realtime.Database
}

func (m *MockRepository) Watch(ctx context.Context, samples bool) *syncer.Mirror[Product] {
	return NewRepository(m.db).Watch(ctx, samples)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p Product) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) BulkUpdate(ctx context.Context, edit BulkEdit) error {
	return m.Called(ctx, edit).Error(0)
}

func (m *MockRepository) Seed(ctx context.Context, products []Product) error {
	return m.Called(ctx, products).Error(0)
}

// --- Helpers ---

func seedDB(t *testing.T, products ...Product) *realtime.Memory {
	t.Helper()
	db := realtime.NewMemory()
	for _, p := range products {
		require.NoError(t, db.Set(context.Background(), realtime.Join(collection, p.ID), p.record()))
	}
	return db
}

func titles(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

// --- Tests ---

func TestCatalog_FallsBackToSamples(t *testing.T) {
	ctx := context.Background()

	t.Run("empty collection", func(t *testing.T) {
		c := NewCatalog(ctx, NewRepository(realtime.NewMemory()))
		defer c.Close()
		assert.Equal(t, SampleProducts(), c.Products())
	})

	t.Run("read failure", func(t *testing.T) {
		db := realtime.NewMemory()
		db.FailReads(collection, errors.New("offline"))

		c := NewCatalog(ctx, NewRepository(db))
		defer c.Close()
		assert.Equal(t, SampleProducts(), c.Products())
	})
}

func TestCatalog_Search(t *testing.T) {
	ctx := context.Background()
	db := seedDB(t,
		Product{ID: "a1", Title: "Wool Scarf", Price: "1,200 DA", Category: "Women"},
		Product{ID: "a2", Title: "Denim Jacket", Price: "5,800 DA", Category: "Men"},
		Product{ID: "a3", Title: "Cotton Scarf", Price: "900 DA", Category: "Men"},
	)
	c := NewCatalog(ctx, NewRepository(db))
	defer c.Close()

	t.Run("newest first by default", func(t *testing.T) {
		got := c.Search(Query{})
		assert.Equal(t, []string{"Cotton Scarf", "Denim Jacket", "Wool Scarf"}, titles(got))
	})

	t.Run("term is case insensitive", func(t *testing.T) {
		got := c.Search(Query{Term: "SCARF", Sort: SortNewest})
		assert.Equal(t, []string{"Cotton Scarf", "Wool Scarf"}, titles(got))
	})

	t.Run("category filter", func(t *testing.T) {
		got := c.Search(Query{Category: "Men"})
		assert.Equal(t, []string{"Cotton Scarf", "Denim Jacket"}, titles(got))

		all := c.Search(Query{Category: AllCategories})
		assert.Len(t, all, 3)
	})

	t.Run("price sorting", func(t *testing.T) {
		asc := c.Search(Query{Sort: SortPriceAsc})
		assert.Equal(t, []string{"Cotton Scarf", "Wool Scarf", "Denim Jacket"}, titles(asc))

		desc := c.Search(Query{Sort: SortPriceDesc})
		assert.Equal(t, []string{"Denim Jacket", "Wool Scarf", "Cotton Scarf"}, titles(desc))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, c.Search(Query{Term: "boots"}))
	})

	assert.Equal(t, []string{AllCategories, "Men", "Women"}, c.Categories())
}

func TestCatalog_NewArrivals(t *testing.T) {
	ctx := context.Background()

	t.Run("samples", func(t *testing.T) {
		c := NewCatalog(ctx, NewRepository(realtime.NewMemory()))
		defer c.Close()
		got := c.NewArrivals()
		require.Len(t, got, 4)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p4", got[3].ID)
	})

	t.Run("latest four", func(t *testing.T) {
		db := realtime.NewMemory()
		for i := 0; i < 6; i++ {
			_, err := db.Push(ctx, collection, map[string]any{"title": string(rune('A' + i))})
			require.NoError(t, err)
		}
		c := NewCatalog(ctx, NewRepository(db))
		defer c.Close()
		assert.Equal(t, []string{"F", "E", "D", "C"}, titles(c.NewArrivals()))
	})
}

func TestCatalog_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("remote record", func(t *testing.T) {
		db := seedDB(t, Product{ID: "x1", Title: "Hat", Price: "700 DA"})
		c := NewCatalog(ctx, NewRepository(db))
		defer c.Close()

		p, err := c.Get(ctx, "x1")
		require.NoError(t, err)
		assert.Equal(t, "Hat", p.Title)
	})

	t.Run("sample fallback on read failure", func(t *testing.T) {
		repo := &MockRepository{db: realtime.NewMemory()}
		repo.On("FindByID", ctx, "p2").Return(nil, errors.New("offline"))
		c := NewCatalog(ctx, repo)
		defer c.Close()

		p, err := c.Get(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, "Urban Denim Jacket", p.Title)
		repo.AssertExpectations(t)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		c := NewCatalog(ctx, NewRepository(realtime.NewMemory()))
		defer c.Close()

		_, err := c.Get(ctx, "zzz")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestCatalog_Wishlist(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates in order and skips unknown ids", func(t *testing.T) {
		db := seedDB(t, Product{ID: "x1", Title: "Hat", Price: "700 DA"})
		c := NewCatalog(ctx, NewRepository(db))
		defer c.Close()

		got, err := c.Wishlist(ctx, []string{"p3", "gone", "x1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Classic White Sneakers", "Hat"}, titles(got))
	})

	t.Run("empty", func(t *testing.T) {
		c := NewCatalog(ctx, NewRepository(realtime.NewMemory()))
		defer c.Close()

		got, err := c.Wishlist(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("read errors propagate", func(t *testing.T) {
		boom := errors.New("offline")
		repo := &MockRepository{db: realtime.NewMemory()}
		repo.On("FindByID", ctx, "p1").Return(nil, boom)
		c := NewCatalog(ctx, repo)
		defer c.Close()

		_, err := c.Wishlist(ctx, []string{"p1"})
		assert.ErrorIs(t, err, boom)
	})
}
