package product

import (
	"context"
	"sort"
	"strings"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/pricing"
	"shopyz-be/internal/syncer"

	"go.uber.org/zap"
)

const newArrivalsCount = 4

// Catalog serves the storefront's read side of the products collection.
type Catalog interface {
	Products() []Product
	Search(q Query) []Product
	Categories() []string
	NewArrivals() []Product
	Get(ctx context.Context, id string) (Product, error)
	Wishlist(ctx context.Context, ids []string) ([]Product, error)
	// Wait blocks until the first delivery of the products subscription.
	Wait(ctx context.Context) error
	Close()
}

type catalog struct {
	repo   Repository
	mirror *syncer.Mirror[Product]
}

// NewCatalog subscribes to products for the lifetime of the returned catalog.
func NewCatalog(ctx context.Context, repo Repository) Catalog {
	return &catalog{
		repo:   repo,
		mirror: repo.Watch(ctx, true),
	}
}

func (c *catalog) Wait(ctx context.Context) error {
	return c.mirror.Wait(ctx)
}

func (c *catalog) Products() []Product {
	return c.mirror.Items()
}

func (c *catalog) Search(q Query) []Product {
	term := strings.ToLower(q.Term)

	out := make([]Product, 0)
	for _, p := range c.mirror.Items() {
		if !strings.Contains(strings.ToLower(p.Title), term) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return pricing.ParseAmount(out[i].Price) < pricing.ParseAmount(out[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return pricing.ParseAmount(out[i].Price) > pricing.ParseAmount(out[j].Price)
		})
	}
	return out
}

// Categories returns "All" followed by every category in listing order.
func (c *catalog) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{AllCategories: true}
	for _, p := range c.mirror.Items() {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

func (c *catalog) NewArrivals() []Product {
	items := c.mirror.Items()
	if len(items) > newArrivalsCount {
		items = items[:newArrivalsCount]
	}
	return items
}

// Get reads one product. Read failures and missing records fall back to the demo
// catalog before reporting ErrProductNotFound.
func (c *catalog) Get(ctx context.Context, id string) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", id),
	)

	p, err := c.repo.FindByID(ctx, id)
	if err != nil {
		log.Warn("product read failed, trying sample data", zap.Error(err))
	}
	if err == nil && p != nil {
		return *p, nil
	}

	if sample, ok := SampleByID(id); ok {
		return sample, nil
	}
	return Product{}, ErrProductNotFound
}

// Wishlist hydrates liked IDs one by one, in order. IDs unknown both remotely and in
// the demo catalog are skipped; any read error aborts the whole lookup.
func (c *catalog) Wishlist(ctx context.Context, ids []string) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Wishlist"),
	)

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		p, err := c.repo.FindByID(ctx, id)
		if err != nil {
			log.Error("wishlist lookup failed", zap.String("product_id", id), zap.Error(err))
			return nil, err
		}
		if p != nil {
			out = append(out, *p)
			continue
		}
		if sample, ok := SampleByID(id); ok {
			out = append(out, sample)
		}
	}
	return out, nil
}

func (c *catalog) Close() {
	c.mirror.Close()
}
