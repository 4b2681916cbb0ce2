package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippingCost(t *testing.T) {
	t.Run("DeskAvailable", func(t *testing.T) {
		assert.Equal(t, int64(450), ShippingCost("16", MethodDesk))
		assert.Equal(t, int64(600), ShippingCost("16", MethodHome))
	})

	t.Run("DeskUnavailableFallsBackToHome", func(t *testing.T) {
		assert.Equal(t, int64(1600), ShippingCost("37", MethodDesk))
		assert.Equal(t, int64(1600), ShippingCost("37", MethodHome))
	})

	t.Run("UnknownRegion", func(t *testing.T) {
		assert.Zero(t, ShippingCost("99", MethodDesk))
		assert.Zero(t, ShippingCost("", MethodHome))
	})
}

func TestTotalsForAlger(t *testing.T) {
	subtotal := int64(2500)

	assert.Equal(t, int64(2950), subtotal+ShippingCost("16", MethodDesk))
	assert.Equal(t, int64(3100), subtotal+ShippingCost("16", MethodHome))
}

func TestEffectiveMethod(t *testing.T) {
	assert.Equal(t, MethodHome, EffectiveMethod("37", MethodDesk))
	assert.Equal(t, MethodDesk, EffectiveMethod("16", MethodDesk))
	assert.Equal(t, MethodHome, EffectiveMethod("16", MethodHome))
	assert.Equal(t, MethodHome, EffectiveMethod("16", DeliveryMethod("drone")))
	assert.Equal(t, MethodDesk, EffectiveMethod("99", MethodDesk))
}

func TestRegionLookup(t *testing.T) {
	all := Regions()
	require.Len(t, all, 58)
	assert.Equal(t, "1", all[0].Code)

	r, ok := Region("16")
	require.True(t, ok)
	assert.Equal(t, "16 - Alger", r.Name)
	assert.True(t, r.HasDesk())

	r, ok = Region("54")
	require.True(t, ok)
	assert.False(t, r.HasDesk())

	_, ok = Region("0")
	assert.False(t, ok)

	// Mutating the returned slice must not touch the table.
	all[0].Home = 1
	r, _ = Region("1")
	assert.Equal(t, int64(1300), r.Home)
}

func TestCommunes(t *testing.T) {
	assert.Contains(t, Communes("16"), "Hydra")
	assert.Len(t, Communes("31"), 3)
	assert.Nil(t, Communes("19"))
}
