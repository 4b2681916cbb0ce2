package product

import (
	"context"

	"shopyz-be/internal/realtime"
	"shopyz-be/internal/syncer"
)

const collection = "products"

type Repository interface {
	// Watch mirrors the products collection. With samples the mirror serves the demo
	// catalog whenever the collection is empty or unreadable.
	Watch(ctx context.Context, samples bool) *syncer.Mirror[Product]
	// FindByID returns nil when the record does not exist.
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (string, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(ctx context.Context, edit BulkEdit) error
	Seed(ctx context.Context, products []Product) error
}

type repository struct {
	db realtime.Database
}

func NewRepository(db realtime.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Watch(ctx context.Context, samples bool) *syncer.Mirror[Product] {
	cfg := syncer.Config[Product]{
		Path:     collection,
		Decode:   DecodeList,
		Strategy: syncer.Propagate,
	}
	if samples {
		cfg.Strategy = syncer.UseFallback
		cfg.Fallback = SampleProducts()
		cfg.EmptyAsFallback = true
	}
	return syncer.NewMirror(ctx, r.db, cfg)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Product, error) {
	snap, err := r.db.Get(ctx, realtime.Join(collection, id))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, nil
	}
	p := Decode(id, snap)
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (string, error) {
	return r.db.Push(ctx, collection, p.record())
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.Remove(ctx, realtime.Join(collection, id))
}

// BulkUpdate writes the selected fields of every product in one multi-path update.
func (r *repository) BulkUpdate(ctx context.Context, edit BulkEdit) error {
	updates := make(map[string]any, len(edit.IDs)*2)
	for _, id := range edit.IDs {
		if edit.Price != nil {
			updates[realtime.Join(collection, id, "price")] = *edit.Price
		}
		if edit.Stock != nil {
			updates[realtime.Join(collection, id, "stock")] = *edit.Stock
		}
	}
	return r.db.Update(ctx, "", updates)
}

// Seed writes every product under its own ID, leaving other products alone.
func (r *repository) Seed(ctx context.Context, products []Product) error {
	updates := make(map[string]any, len(products))
	for _, p := range products {
		updates[p.ID] = p.record()
	}
	return r.db.Update(ctx, collection, updates)
}
