// Package admin is the shop owner's console: catalog maintenance with per-outcome
// notifications, image ingestion and the orders ledger.
package admin

import (
	"context"
	"errors"
	"io"

	"shopyz-be/internal/imaging"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/order"
	"shopyz-be/internal/product"
	"shopyz-be/internal/session"
	"shopyz-be/internal/syncer"

	"go.uber.org/zap"
)

// Notification texts, one per operation and outcome.
const (
	MsgDeleted       = "Product deleted"
	MsgDeletedLocal  = "Deleted locally (Server Permission Denied)"
	MsgDeleteFailed  = "Delete failed"
	MsgUpdated       = "Products updated"
	MsgUpdatedLocal  = "Updated locally (Server Permission Denied)"
	MsgUpdateFailed  = "Update failed"
	MsgSaved         = "Product saved!"
	MsgSavedLocal    = "Added locally (Server Permission Denied)"
	MsgSaveFailed    = "Failed to save: "
	MsgSeeded        = "Demo data loaded!"
	MsgSeededLocal   = "Loaded locally (Server Permission Denied)"
	MsgSeedFailed    = "Failed to load demo data"
	MsgImagesFailed  = "Failed to process images"
	MsgTitleRequired = "Title and Price are required"
)

type Console interface {
	Products(sess *session.State) ([]product.Product, error)
	Delete(ctx context.Context, sess *session.State, id string) (syncer.Outcome, error)
	BulkUpdate(ctx context.Context, sess *session.State, edit product.BulkEdit) (syncer.Outcome, error)
	Create(ctx context.Context, sess *session.State, input product.NewProductInput) (product.Product, syncer.Outcome, error)
	Seed(ctx context.Context, sess *session.State) (syncer.Outcome, error)
	Images(ctx context.Context, sess *session.State, files []io.Reader) ([]string, error)
	Orders(sess *session.State) ([]order.Order, error)
	Stats(sess *session.State) (order.Stats, error)
	ExportCSV(sess *session.State, w io.Writer) error
}

type console struct {
	products product.AdminService
	ledger   order.Ledger
}

func NewConsole(products product.AdminService, ledger order.Ledger) Console {
	return &console{products: products, ledger: ledger}
}

// notifyOutcome turns a write outcome into the session toast.
func notifyOutcome(sess *session.State, outcome syncer.Outcome, okIcon session.Icon, remote, local, failed string) {
	switch outcome {
	case syncer.AppliedRemotely:
		sess.Notify(remote, okIcon)
	case syncer.AppliedLocallyOnly:
		sess.Notify(local, session.IconError)
	default:
		sess.Notify(failed, session.IconError)
	}
}

func (c *console) Products(sess *session.State) ([]product.Product, error) {
	if err := Require(sess); err != nil {
		return nil, err
	}
	return c.products.Products(), nil
}

func (c *console) Delete(ctx context.Context, sess *session.State, id string) (syncer.Outcome, error) {
	if err := Require(sess); err != nil {
		return syncer.RolledBack, err
	}

	outcome, err := c.products.Delete(ctx, id)
	notifyOutcome(sess, outcome, session.IconInfo, MsgDeleted, MsgDeletedLocal, MsgDeleteFailed)
	return outcome, err
}

func (c *console) BulkUpdate(ctx context.Context, sess *session.State, edit product.BulkEdit) (syncer.Outcome, error) {
	if err := Require(sess); err != nil {
		return syncer.RolledBack, err
	}

	outcome, err := c.products.BulkUpdate(ctx, edit)
	if errors.Is(err, product.ErrNothingToUpdate) || errors.Is(err, product.ErrInvalidStock) {
		return outcome, err
	}
	notifyOutcome(sess, outcome, session.IconSuccess, MsgUpdated, MsgUpdatedLocal, MsgUpdateFailed)
	return outcome, err
}

func (c *console) Create(ctx context.Context, sess *session.State, input product.NewProductInput) (product.Product, syncer.Outcome, error) {
	if err := Require(sess); err != nil {
		return product.Product{}, syncer.RolledBack, err
	}

	p, outcome, err := c.products.Create(ctx, input)
	switch {
	case errors.Is(err, product.ErrTitlePriceRequired):
		sess.Notify(MsgTitleRequired, session.IconError)
		return p, outcome, err
	case errors.Is(err, product.ErrInvalidStock):
		sess.Notify(err.Error(), session.IconError)
		return p, outcome, err
	}

	failed := MsgSaveFailed
	if err != nil {
		failed += err.Error()
	}
	notifyOutcome(sess, outcome, session.IconSuccess, MsgSaved, MsgSavedLocal, failed)
	return p, outcome, err
}

func (c *console) Seed(ctx context.Context, sess *session.State) (syncer.Outcome, error) {
	if err := Require(sess); err != nil {
		return syncer.RolledBack, err
	}

	outcome, err := c.products.Seed(ctx)
	notifyOutcome(sess, outcome, session.IconSuccess, MsgSeeded, MsgSeededLocal, MsgSeedFailed)
	return outcome, err
}

// Images compresses every upload. One bad file fails the whole batch.
func (c *console) Images(ctx context.Context, sess *session.State, files []io.Reader) ([]string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "Images"),
	)

	if err := Require(sess); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	out := make([]string, 0, len(files))
	for i, f := range files {
		uri, err := imaging.Compress(f)
		if err != nil {
			log.Warn("image rejected", zap.Int("index", i), zap.Error(err))
			sess.Notify(MsgImagesFailed, session.IconError)
			return nil, err
		}
		out = append(out, uri)
	}
	return out, nil
}

func (c *console) Orders(sess *session.State) ([]order.Order, error) {
	if err := Require(sess); err != nil {
		return nil, err
	}
	return c.ledger.Orders(), nil
}

func (c *console) Stats(sess *session.State) (order.Stats, error) {
	if err := Require(sess); err != nil {
		return order.Stats{}, err
	}
	return c.ledger.Stats(), nil
}

func (c *console) ExportCSV(sess *session.State, w io.Writer) error {
	if err := Require(sess); err != nil {
		return err
	}
	return c.ledger.ExportCSV(w)
}
