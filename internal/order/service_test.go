package order

import (
	"context"
	"errors"
	"testing"

	"shopyz-be/internal/cart"
	"shopyz-be/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(phone, status, total string, date int64) Order {
	return Order{
		Name:           "Amina",
		Phone:          phone,
		Wilaya:         "16",
		Commune:        "Bab Ezzouar",
		Address:        "12 rue Didouche",
		Total:          total,
		Items:          []cart.Item{{ID: "p1", Title: "Minimalist Cotton Tee", Price: "2,500 DA"}},
		Date:           date,
		Status:         Status(status),
		DeliveryMethod: "home",
		Shipping:       "600 DA",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("appends under a generated key", func(t *testing.T) {
		db := realtime.NewMemory()
		svc := NewService(NewRepository(db))

		id, err := svc.Create(ctx, sampleOrder("0555123456", "Pending", "3,100 DA", 1718000000000))
		require.NoError(t, err)
		require.NotEmpty(t, id)

		snap, err := db.Get(ctx, realtime.Join(collection, id))
		require.NoError(t, err)
		assert.Equal(t, "3,100 DA", snap.Child("total").Value)
		assert.Equal(t, "Pending", snap.Child("status").Value)
		assert.Equal(t, "Minimalist Cotton Tee", snap.Child("items").Child("0").Child("title").Value)
		assert.False(t, snap.Child("id").Exists())
	})

	t.Run("write failures are returned", func(t *testing.T) {
		db := realtime.NewMemory()
		db.DenyWrites(collection)
		svc := NewService(NewRepository(db))

		_, err := svc.Create(ctx, sampleOrder("0555123456", "Pending", "3,100 DA", 1))
		assert.True(t, realtime.IsPermissionDenied(err))
	})
}

func TestService_TrackByPhone(t *testing.T) {
	ctx := context.Background()
	db := realtime.NewMemory()
	svc := NewService(NewRepository(db))

	_, err := svc.Create(ctx, sampleOrder("0555 12 34 56", "Shipped", "3,100 DA", 1))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleOrder("0661000000", "Pending", "900 DA", 2))
	require.NoError(t, err)

	t.Run("matches on digits only", func(t *testing.T) {
		o, err := svc.TrackByPhone(ctx, "0555-123-456")
		require.NoError(t, err)
		assert.Equal(t, StatusShipped, o.Status)
		assert.NotEmpty(t, o.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.TrackByPhone(ctx, "0770000000")
		assert.ErrorIs(t, err, ErrOrderNotFound)

		_, err = svc.TrackByPhone(ctx, "abc")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("blank phone", func(t *testing.T) {
		_, err := svc.TrackByPhone(ctx, "   ")
		assert.ErrorIs(t, err, ErrPhoneRequired)
	})

	t.Run("empty collection", func(t *testing.T) {
		empty := NewService(NewRepository(realtime.NewMemory()))
		_, err := empty.TrackByPhone(ctx, "0555123456")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("read errors propagate", func(t *testing.T) {
		boom := errors.New("offline")
		failing := realtime.NewMemory()
		failing.FailReads(collection, boom)

		_, err := NewService(NewRepository(failing)).TrackByPhone(ctx, "0555123456")
		assert.ErrorIs(t, err, boom)
	})
}

func TestDecode_Lenient(t *testing.T) {
	snap := realtime.Snapshot{Key: "o1", Value: map[string]any{
		"name":   "Karim",
		"phone":  float64(555123456),
		"total":  float64(4200),
		"date":   float64(1718000000000),
		"status": "Delivered",
		"items": []any{
			map[string]any{"id": "p3", "title": "Classic White Sneakers", "price": "4,200 DA"},
			"garbage",
		},
	}}

	o := decode(snap)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "555123456", o.Phone)
	assert.Equal(t, "4200", o.Total)
	assert.Equal(t, int64(1718000000000), o.Date)
	assert.Equal(t, StatusDelivered, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Classic White Sneakers", o.Items[0].Title)
}
