package comment

import (
	"context"
	"strings"
	"time"

	"shopyz-be/internal/logger"
	"shopyz-be/internal/realtime"
	"shopyz-be/internal/syncer"
	"shopyz-be/internal/utils"

	"go.uber.org/zap"
)

const (
	collection = "comments"

	// openTimeout bounds how long Open waits for the first delivery.
	openTimeout = 3 * time.Second
)

type Service interface {
	// Open subscribes to the reviews of one product and waits briefly for the first
	// delivery. Read failures leave the thread empty rather than failing.
	Open(ctx context.Context, productID string) (*Thread, error)
}

type service struct {
	db   realtime.Database
	wait time.Duration
}

func NewService(db realtime.Database) Service {
	return &service{db: db, wait: openTimeout}
}

func (s *service) Open(ctx context.Context, productID string) (*Thread, error) {
	if productID == "" {
		return nil, ErrNoProduct
	}
	if err := realtime.ValidateKey(productID); err != nil {
		return nil, err
	}

	path := realtime.Join(collection, productID)
	mirror := syncer.NewMirror(ctx, s.db, syncer.Config[Comment]{
		Path:     path,
		Strategy: syncer.UseFallback,
		Decode:   decodeAll,
	})

	waitCtx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	if err := mirror.Wait(waitCtx); err != nil {
		logger.FromCtx(ctx).Warn("reviews not loaded in time, thread starts empty",
			zap.String("layer", "service"),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return &Thread{db: s.db, path: path, mirror: mirror}, nil
}

func decodeAll(snap realtime.Snapshot) []Comment {
	children := snap.Children()
	out := make([]Comment, 0, len(children))
	for _, c := range children {
		text, _ := c.Child("text").Value.(string)
		out = append(out, Comment{ID: c.Key, Text: text})
	}
	return out
}

// Thread is an open review subscription for one product.
type Thread struct {
	db     realtime.Database
	path   string
	mirror *syncer.Mirror[Comment]
}

func (t *Thread) Comments() []Comment {
	return t.mirror.Items()
}

// Post appends a review. The review is listed locally whether or not the remote write
// succeeds; a failed write is returned so the caller can tell the user.
func (t *Thread) Post(ctx context.Context, text string) (Comment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PostComment"),
		zap.String("path", t.path),
	)

	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrEmptyComment
	}

	c := Comment{Text: text}
	id, err := t.db.Push(ctx, t.path, map[string]any{"text": text})
	syncer.Record(syncer.Classify(err))
	if err != nil {
		log.Warn("review write failed, keeping it locally", zap.Error(err))
		c.ID = utils.LocalID(time.Now())
	} else {
		c.ID = id
	}

	t.mirror.Mutate(func(items []Comment) []Comment {
		for _, existing := range items {
			if existing.ID == c.ID {
				return items
			}
		}
		return append(items, c)
	})
	return c, err
}

func (t *Thread) Close() {
	t.mirror.Close()
}
