package order

import (
	"context"
	"strings"
	"time"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, o Order) (string, error)
	TrackByPhone(ctx context.Context, phone string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create appends the order. The caller decides what a failure means for the user.
func (s *service) Create(ctx context.Context, o Order) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	start := time.Now()
	id, err := s.repo.Create(ctx, o)
	if err != nil {
		log.Warn("order write failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return "", err
	}

	log.Info("order created",
		zap.String("order_id", id),
		zap.String("total", o.Total),
		zap.Int("items", len(o.Items)),
		zap.Duration("duration", time.Since(start)),
	)
	return id, nil
}

// TrackByPhone returns the first stored order whose phone has the same digits as
// phone. Read failures are returned as is.
func (s *service) TrackByPhone(ctx context.Context, phone string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "TrackByPhone"),
	)

	if strings.TrimSpace(phone) == "" {
		return nil, ErrPhoneRequired
	}
	want := utils.DigitsOnly(phone)
	if want == "" {
		return nil, ErrOrderNotFound
	}

	orders, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to read orders", zap.Error(err))
		return nil, err
	}

	for _, o := range orders {
		if utils.DigitsOnly(o.Phone) == want {
			found := o
			return &found, nil
		}
	}
	return nil, ErrOrderNotFound
}
