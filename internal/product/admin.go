package product

import (
	"context"
	"strings"
	"time"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/pricing"
	"shopyz-be/internal/syncer"
	"shopyz-be/internal/utils"

	"go.uber.org/zap"
)

// AdminService runs optimistic product writes against the admin's own mirror.
type AdminService interface {
	Products() []Product
	Err() error
	Delete(ctx context.Context, id string) (syncer.Outcome, error)
	BulkUpdate(ctx context.Context, edit BulkEdit) (syncer.Outcome, error)
	Create(ctx context.Context, input NewProductInput) (Product, syncer.Outcome, error)
	Seed(ctx context.Context) (syncer.Outcome, error)
	Wait(ctx context.Context) error
	Close()
}

type adminService struct {
	repo   Repository
	mirror *syncer.Mirror[Product]
	now    func() time.Time
}

func NewAdminService(ctx context.Context, repo Repository) AdminService {
	return &adminService{
		repo:   repo,
		mirror: repo.Watch(ctx, false),
		now:    time.Now,
	}
}

func (s *adminService) Products() []Product {
	return s.mirror.Items()
}

func (s *adminService) Err() error {
	return s.mirror.Err()
}

func (s *adminService) Delete(ctx context.Context, id string) (syncer.Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", id),
	)

	outcome, err := syncer.Apply(ctx, s.mirror,
		func(items []Product) []Product {
			out := items[:0]
			for _, p := range items {
				if p.ID != id {
					out = append(out, p)
				}
			}
			return out
		},
		func(ctx context.Context) error {
			return s.repo.Delete(ctx, id)
		},
	)

	log.Info("delete product finished", zap.Stringer("outcome", outcome))
	return outcome, err
}

func (s *adminService) BulkUpdate(ctx context.Context, edit BulkEdit) (syncer.Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "BulkUpdateProducts"),
	)

	if len(edit.IDs) == 0 || (edit.Price == nil && edit.Stock == nil) {
		return syncer.RolledBack, ErrNothingToUpdate
	}
	if edit.Stock != nil && *edit.Stock < 0 {
		return syncer.RolledBack, ErrInvalidStock
	}

	stored := edit
	if edit.Price != nil {
		stored.Price = utils.StrPtr(strings.TrimSpace(*edit.Price) + " " + pricing.CurrencyLabel)
	}

	selected := make(map[string]bool, len(edit.IDs))
	for _, id := range edit.IDs {
		selected[id] = true
	}

	outcome, err := syncer.Apply(ctx, s.mirror,
		func(items []Product) []Product {
			for i := range items {
				if !selected[items[i].ID] {
					continue
				}
				if stored.Price != nil {
					items[i].Price = *stored.Price
				}
				if stored.Stock != nil {
					items[i].Stock = *stored.Stock
				}
			}
			return items
		},
		func(ctx context.Context) error {
			return s.repo.BulkUpdate(ctx, stored)
		},
	)

	log.Info("bulk update finished",
		zap.Int("count", len(edit.IDs)),
		zap.Stringer("outcome", outcome),
	)
	return outcome, err
}

// Create validates the input, fills admin defaults and pushes the new record. When the
// write is denied the product is listed locally under a local_ ID.
func (s *adminService) Create(ctx context.Context, input NewProductInput) (Product, syncer.Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if err := utils.ValidateStruct(input); err != nil {
		fields := utils.FailedFields(err)
		if fields["title"] || fields["price"] {
			return Product{}, syncer.RolledBack, ErrTitlePriceRequired
		}
		return Product{}, syncer.RolledBack, ErrInvalidStock
	}

	p := Product{
		ID:          utils.LocalID(s.now()),
		Title:       input.Title,
		Price:       pricing.EnsureCurrency(input.Price),
		Stock:       input.Stock,
		Description: input.Description,
		Category:    input.Category,
		Images:      input.Images,
	}
	if p.Category == "" {
		p.Category = DefaultAdminCategory
	}
	if len(p.Images) == 0 {
		p.Images = []string{PlaceholderImage}
	}

	var remoteID string
	outcome, err := syncer.Apply(ctx, s.mirror,
		func(items []Product) []Product {
			return append([]Product{p}, items...)
		},
		func(ctx context.Context) error {
			id, err := s.repo.Create(ctx, p)
			remoteID = id
			return err
		},
	)
	if outcome == syncer.AppliedRemotely {
		s.mirror.Mutate(func(items []Product) []Product {
			for i := range items {
				if items[i].ID == p.ID {
					return append(items[:i], items[i+1:]...)
				}
			}
			return items
		})
		p.ID = remoteID
	}

	log.Info("create product finished",
		zap.String("product_id", p.ID),
		zap.Stringer("outcome", outcome),
	)
	return p, outcome, err
}

// Seed writes the demo catalog. Locally the demo products replace same-ID entries and
// are added when missing.
func (s *adminService) Seed(ctx context.Context) (syncer.Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SeedProducts"),
	)

	samples := SampleProducts()
	outcome, err := syncer.Apply(ctx, s.mirror,
		func(items []Product) []Product {
			index := make(map[string]int, len(items))
			for i, p := range items {
				index[p.ID] = i
			}
			for _, sp := range samples {
				if i, ok := index[sp.ID]; ok {
					items[i] = sp
					continue
				}
				items = append(items, sp)
			}
			return items
		},
		func(ctx context.Context) error {
			return s.repo.Seed(ctx, samples)
		},
	)

	log.Info("seed finished", zap.Stringer("outcome", outcome))
	return outcome, err
}

func (s *adminService) Wait(ctx context.Context) error {
	return s.mirror.Wait(ctx)
}

func (s *adminService) Close() {
	s.mirror.Close()
}
