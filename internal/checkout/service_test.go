package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopyz-be/internal/cart"
	"shopyz-be/internal/order"
	"shopyz-be/internal/pricing"
	"shopyz-be/internal/realtime"
	"shopyz-be/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, o order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockOrderService) TrackByPhone(ctx context.Context, phone string) (*order.Order, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newSession(t *testing.T, items ...cart.Item) *session.State {
	t.Helper()
	s := session.Load(context.Background(), session.NewMemoryStorage(), "sid")
	for _, it := range items {
		require.NoError(t, s.AddToCart(it))
	}
	s.DrainToasts()
	return s
}

func validForm() Form {
	return Form{
		Name:           "Amina",
		Phone:          "0555123456",
		Wilaya:         "16",
		Commune:        "Kouba",
		Address:        "12 rue Didouche",
		DeliveryMethod: pricing.MethodDesk,
	}
}

var tee = cart.Item{ID: "p1", Title: "Minimalist Cotton Tee", Price: "2,500 DA"}

func TestService_Quote(t *testing.T) {
	svc := NewService(new(MockOrderService))
	sess := newSession(t, tee)

	t.Run("desk in Alger", func(t *testing.T) {
		q := svc.Quote(sess, "16", pricing.MethodDesk)
		assert.Equal(t, int64(2500), q.Subtotal)
		assert.Equal(t, int64(450), q.Shipping)
		assert.Equal(t, int64(2950), q.Total)
		assert.True(t, q.DeskAvailable)
	})

	t.Run("home in Alger", func(t *testing.T) {
		q := svc.Quote(sess, "16", pricing.MethodHome)
		assert.Equal(t, int64(3100), q.Total)
	})

	t.Run("desk falls back to home where no office exists", func(t *testing.T) {
		q := svc.Quote(sess, "37", pricing.MethodDesk)
		assert.Equal(t, pricing.MethodHome, q.DeliveryMethod)
		assert.Equal(t, int64(1600), q.Shipping)
		assert.False(t, q.DeskAvailable)
	})

	t.Run("unknown region ships free", func(t *testing.T) {
		q := svc.Quote(sess, "", "")
		assert.Equal(t, int64(0), q.Shipping)
		assert.Equal(t, int64(2500), q.Total)
		assert.Equal(t, pricing.MethodHome, q.DeliveryMethod)
	})
}

func TestForm_SetRegion(t *testing.T) {
	f := NewForm()
	f.DeliveryMethod = pricing.MethodDesk
	f.SetRegion("16")
	f.Commune = "Kouba"
	assert.Equal(t, pricing.MethodDesk, f.DeliveryMethod)

	f.SetRegion("37")
	assert.Empty(t, f.Commune)
	assert.Equal(t, pricing.MethodHome, f.DeliveryMethod)
}

func TestService_SubmitValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Form)
		items   []cart.Item
		wantErr error
	}{
		{"blank name", func(f *Form) { f.Name = "   " }, []cart.Item{tee}, ErrInvalidContact},
		{"short phone", func(f *Form) { f.Phone = "05551234" }, []cart.Item{tee}, ErrInvalidContact},
		{"missing region", func(f *Form) { f.Wilaya = "" }, []cart.Item{tee}, ErrMissingLocation},
		{"missing commune", func(f *Form) { f.Commune = "" }, []cart.Item{tee}, ErrMissingLocation},
		{"contact checked before location", func(f *Form) { f.Phone = ""; f.Commune = "" }, []cart.Item{tee}, ErrInvalidContact},
		{"empty cart", func(f *Form) {}, nil, ErrEmptyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderService)
			svc := NewService(orders)
			sess := newSession(t, tt.items...)

			form := validForm()
			tt.mutate(&form)

			res, err := svc.Submit(ctx, sess, form)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, PhaseFillingForm, svc.Phase(sess.ID()))
			assert.Len(t, sess.Cart(), len(tt.items))

			toasts := sess.Toasts()
			require.Len(t, toasts, 1)
			assert.Equal(t, session.IconError, toasts[0].Icon)
			assert.Equal(t, sess.T(messageKeys[tt.wantErr], nil), toasts[0].Message)
			orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			sess.Flush()
		})
	}
}

func TestService_SubmitSuccess(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderService)
	svc := NewService(orders).(*service)
	svc.now = func() time.Time { return time.UnixMilli(1718000000000) }

	sess := newSession(t, tee)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o order.Order) bool {
		return o.Total == "2,950 DA" &&
			o.Shipping == "450 DA" &&
			o.Status == order.StatusPending &&
			o.Date == 1718000000000 &&
			o.DeliveryMethod == pricing.MethodDesk &&
			len(o.Items) == 1 && o.Items[0].ID == "p1" &&
			o.Commune == "Kouba"
	})).Return("-Nabc", nil).Once()

	res, err := svc.Submit(ctx, sess, validForm())
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, res.Phase)
	assert.Equal(t, "-Nabc", res.OrderID)
	assert.Equal(t, "2,950 DA", res.Total)
	assert.Empty(t, sess.Cart())
	assert.Empty(t, sess.Toasts())
	assert.Equal(t, PhaseSuccess, svc.Phase(sess.ID()))
	orders.AssertExpectations(t)
	sess.Flush()
}

func TestService_SubmitWriteFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderService)
	svc := NewService(orders)
	sess := newSession(t, tee)

	orders.On("Create", mock.Anything, mock.Anything).Return("", errors.New("offline")).Once()

	res, err := svc.Submit(ctx, sess, validForm())
	require.NoError(t, err)
	assert.Equal(t, PhaseSuccess, res.Phase)
	assert.Empty(t, res.OrderID)
	assert.Empty(t, sess.Cart())
	sess.Flush()
}

func TestService_SubmitWhileSubmitting(t *testing.T) {
	svc := NewService(new(MockOrderService)).(*service)
	sess := newSession(t, tee)
	require.True(t, svc.begin(sess.ID()))

	_, err := svc.Submit(context.Background(), sess, validForm())
	assert.ErrorIs(t, err, ErrAlreadySubmitting)
	assert.Len(t, sess.Cart(), 1)
}

func TestService_SubmitWritesOrder(t *testing.T) {
	ctx := context.Background()
	db := realtime.NewMemory()
	svc := NewService(order.NewService(order.NewRepository(db)))
	sess := newSession(t, tee)

	form := validForm()
	form.DeliveryMethod = pricing.MethodHome
	res, err := svc.Submit(ctx, sess, form)
	require.NoError(t, err)

	snap, err := db.Get(ctx, realtime.Join("orders", res.OrderID))
	require.NoError(t, err)
	assert.Equal(t, "3,100 DA", snap.Child("total").Value)
	assert.Equal(t, "600 DA", snap.Child("shipping").Value)
	assert.Equal(t, "home", snap.Child("deliveryMethod").Value)
	sess.Flush()
}

func TestService_InvalidSubmitDuringSubmitKeepsGuard(t *testing.T) {
	orders := new(MockOrderService)
	svc := NewService(orders)
	sess := newSession(t, tee)

	entered := make(chan struct{})
	release := make(chan struct{})
	orders.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return("-Norder", nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), sess, validForm())
		done <- err
	}()
	<-entered

	bad := validForm()
	bad.Phone = "0555"
	_, err := svc.Submit(context.Background(), sess, bad)
	assert.ErrorIs(t, err, ErrInvalidContact)
	assert.Equal(t, PhaseSubmitting, svc.Phase(sess.ID()))

	_, err = svc.Submit(context.Background(), sess, validForm())
	assert.ErrorIs(t, err, ErrAlreadySubmitting)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, PhaseSuccess, svc.Phase(sess.ID()))
	orders.AssertNumberOfCalls(t, "Create", 1)
}
