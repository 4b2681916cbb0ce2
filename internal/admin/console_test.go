package admin

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"shopyz-be/internal/order"
	"shopyz-be/internal/product"
	"shopyz-be/internal/realtime"
	"shopyz-be/internal/session"
	"shopyz-be/internal/syncer"
	"shopyz-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db      *realtime.Memory
	console Console
	sess    *session.State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := realtime.NewMemory()
	require.NoError(t, db.Set(ctx, "products/a1", map[string]any{"title": "Hat", "price": "900 DA", "stock": 3}))
	require.NoError(t, db.Set(ctx, "orders/o1", map[string]any{
		"name": "Amina", "phone": "0555123456", "total": "3,100 DA", "status": "Delivered", "date": 1718000000000,
	}))

	products := product.NewAdminService(ctx, product.NewRepository(db))
	ledger := order.NewLedger(ctx, order.NewRepository(db), nil)
	t.Cleanup(products.Close)
	t.Cleanup(ledger.Close)

	sess := session.Load(ctx, session.NewMemoryStorage(), "sid")
	sess.SetAdmin(true)

	return &fixture{db: db, console: NewConsole(products, ledger), sess: sess}
}

func lastToast(t *testing.T, sess *session.State) session.Toast {
	t.Helper()
	toasts := sess.Toasts()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

func TestConsole_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.sess.SetAdmin(false)
	ctx := context.Background()

	_, err := f.console.Products(f.sess)
	assert.ErrorIs(t, err, ErrNotAdmin)
	_, err = f.console.Delete(ctx, f.sess, "a1")
	assert.ErrorIs(t, err, ErrNotAdmin)
	_, err = f.console.Seed(ctx, f.sess)
	assert.ErrorIs(t, err, ErrNotAdmin)
	_, err = f.console.Orders(f.sess)
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.ErrorIs(t, f.console.ExportCSV(f.sess, io.Discard), ErrNotAdmin)
	assert.Empty(t, f.sess.Toasts())
}

func TestConsole_DeleteToasts(t *testing.T) {
	ctx := context.Background()

	t.Run("remote", func(t *testing.T) {
		f := newFixture(t)
		outcome, err := f.console.Delete(ctx, f.sess, "a1")
		require.NoError(t, err)
		assert.Equal(t, syncer.AppliedRemotely, outcome)
		toast := lastToast(t, f.sess)
		assert.Equal(t, MsgDeleted, toast.Message)
		assert.Equal(t, session.IconInfo, toast.Icon)
	})

	t.Run("permission denied", func(t *testing.T) {
		f := newFixture(t)
		f.db.DenyWrites("products")
		_, err := f.console.Delete(ctx, f.sess, "a1")
		assert.True(t, realtime.IsPermissionDenied(err))

		toast := lastToast(t, f.sess)
		assert.Equal(t, MsgDeletedLocal, toast.Message)
		assert.Equal(t, session.IconError, toast.Icon)

		list, err := f.console.Products(f.sess)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(t)
		f.db.FailWrites("products", errors.New("offline"))
		_, err := f.console.Delete(ctx, f.sess, "a1")
		require.Error(t, err)
		assert.Equal(t, MsgDeleteFailed, lastToast(t, f.sess).Message)

		list, _ := f.console.Products(f.sess)
		assert.Len(t, list, 1)
	})
}

func TestConsole_BulkUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing selected is rejected silently", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.console.BulkUpdate(ctx, f.sess, product.BulkEdit{Price: utils.StrPtr("100")})
		assert.ErrorIs(t, err, product.ErrNothingToUpdate)
		assert.Empty(t, f.sess.Toasts())
	})

	t.Run("permission denied keeps the edit", func(t *testing.T) {
		f := newFixture(t)
		f.db.DenyWrites("")
		outcome, _ := f.console.BulkUpdate(ctx, f.sess, product.BulkEdit{IDs: []string{"a1"}, Stock: utils.IntPtr(9)})
		assert.Equal(t, syncer.AppliedLocallyOnly, outcome)
		assert.Equal(t, MsgUpdatedLocal, lastToast(t, f.sess).Message)

		list, _ := f.console.Products(f.sess)
		require.Len(t, list, 1)
		assert.Equal(t, 9, list[0].Stock)
	})

	t.Run("remote", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.console.BulkUpdate(ctx, f.sess, product.BulkEdit{IDs: []string{"a1"}, Price: utils.StrPtr("1200")})
		require.NoError(t, err)
		assert.Equal(t, MsgUpdated, lastToast(t, f.sess).Message)
		assert.Equal(t, session.IconSuccess, lastToast(t, f.sess).Icon)
	})
}

func TestConsole_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("missing title", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.console.Create(ctx, f.sess, product.NewProductInput{Price: "100"})
		assert.ErrorIs(t, err, product.ErrTitlePriceRequired)
		assert.Equal(t, MsgTitleRequired, lastToast(t, f.sess).Message)
	})

	t.Run("saved", func(t *testing.T) {
		f := newFixture(t)
		p, outcome, err := f.console.Create(ctx, f.sess, product.NewProductInput{Title: "Scarf", Price: "1500"})
		require.NoError(t, err)
		assert.Equal(t, syncer.AppliedRemotely, outcome)
		assert.Equal(t, "1500 DA", p.Price)
		assert.Equal(t, MsgSaved, lastToast(t, f.sess).Message)
	})

	t.Run("failure carries the cause", func(t *testing.T) {
		f := newFixture(t)
		f.db.FailWrites("products", errors.New("offline"))
		_, outcome, err := f.console.Create(ctx, f.sess, product.NewProductInput{Title: "Scarf", Price: "1500"})
		require.Error(t, err)
		assert.Equal(t, syncer.RolledBack, outcome)
		assert.True(t, strings.HasPrefix(lastToast(t, f.sess).Message, MsgSaveFailed))
		assert.Contains(t, lastToast(t, f.sess).Message, "offline")
	})
}

func TestConsole_Seed(t *testing.T) {
	f := newFixture(t)
	f.db.DenyWrites("products")

	outcome, _ := f.console.Seed(context.Background(), f.sess)
	assert.Equal(t, syncer.AppliedLocallyOnly, outcome)
	assert.Equal(t, MsgSeededLocal, lastToast(t, f.sess).Message)

	list, _ := f.console.Products(f.sess)
	assert.Len(t, list, len(product.SampleProducts())+1)
}

func TestConsole_Images(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))

	uris, err := f.console.Images(ctx, f.sess, []io.Reader{&buf})
	require.NoError(t, err)
	require.Len(t, uris, 1)
	assert.True(t, strings.HasPrefix(uris[0], "data:image/jpeg;base64,"))

	_, err = f.console.Images(ctx, f.sess, nil)
	assert.ErrorIs(t, err, ErrNoImages)

	_, err = f.console.Images(ctx, f.sess, []io.Reader{strings.NewReader("nope")})
	require.Error(t, err)
	assert.Equal(t, MsgImagesFailed, lastToast(t, f.sess).Message)
}

func TestConsole_Ledger(t *testing.T) {
	f := newFixture(t)

	orders, err := f.console.Orders(f.sess)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	stats, err := f.console.Stats(f.sess)
	require.NoError(t, err)
	assert.Equal(t, order.Stats{Orders: 1, Revenue: 3100}, stats)

	var buf bytes.Buffer
	require.NoError(t, f.console.ExportCSV(f.sess, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "ID,Name,Phone,Items,Total,Status,Date\n"))
	assert.Contains(t, buf.String(), "o1,Amina,0555123456,,\"3,100 DA\",Delivered,6/10/2024")
}
