package order

import (
	"context"
	"strconv"

	"shopyz-be/internal/cart"
	"shopyz-be/internal/pricing"
	"shopyz-be/internal/realtime"
	"shopyz-be/internal/syncer"
)

const collection = "orders"

type Repository interface {
	Create(ctx context.Context, o Order) (string, error)
	List(ctx context.Context) ([]Order, error)
	Watch(ctx context.Context) *syncer.Mirror[Order]
}

type repository struct {
	db realtime.Database
}

func NewRepository(db realtime.Database) Repository {
	return &repository{db: db}
}

// Create appends the order under a generated key.
func (r *repository) Create(ctx context.Context, o Order) (string, error) {
	o.ID = ""
	return r.db.Push(ctx, collection, o)
}

// List reads every order once, oldest first.
func (r *repository) List(ctx context.Context) ([]Order, error) {
	snap, err := r.db.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	return decodeAll(snap, false), nil
}

// Watch mirrors the orders collection newest first. Errors are kept for the caller.
func (r *repository) Watch(ctx context.Context) *syncer.Mirror[Order] {
	return syncer.NewMirror(ctx, r.db, syncer.Config[Order]{
		Path:     collection,
		Strategy: syncer.Propagate,
		Decode: func(snap realtime.Snapshot) []Order {
			return decodeAll(snap, true)
		},
	})
}

func decodeAll(snap realtime.Snapshot, newestFirst bool) []Order {
	children := snap.Children()
	out := make([]Order, 0, len(children))
	for _, c := range children {
		out = append(out, decode(c))
	}
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// decode reads an order leniently: numbers stored where text is expected are kept
// as their decimal form and malformed items are dropped.
func decode(snap realtime.Snapshot) Order {
	o := Order{
		ID:             snap.Key,
		Name:           text(snap.Child("name").Value),
		Phone:          text(snap.Child("phone").Value),
		Wilaya:         text(snap.Child("wilaya").Value),
		Commune:        text(snap.Child("commune").Value),
		Address:        text(snap.Child("address").Value),
		Total:          text(snap.Child("total").Value),
		Status:         Status(text(snap.Child("status").Value)),
		DeliveryMethod: pricing.DeliveryMethod(text(snap.Child("deliveryMethod").Value)),
		Shipping:       text(snap.Child("shipping").Value),
		Items:          []cart.Item{},
	}
	if ms, ok := snap.Child("date").Value.(float64); ok {
		o.Date = int64(ms)
	}
	for _, it := range snap.Child("items").Children() {
		if _, ok := it.Value.(map[string]any); !ok {
			continue
		}
		o.Items = append(o.Items, cart.Item{
			ID:    text(it.Child("id").Value),
			Title: text(it.Child("title").Value),
			Price: text(it.Child("price").Value),
		})
	}
	return o
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
