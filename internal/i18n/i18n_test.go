package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Added to Bag", T(English, "added_to_bag", nil))
	assert.Equal(t, "تمت الإضافة للسلة", T(Arabic, "added_to_bag", nil))
	assert.Equal(t, "Please enter a valid Name and Phone Number", T(English, "fill_details", nil))
	assert.Equal(t, "Order not found.", T(English, "not_found", nil))
}

func TestT_Params(t *testing.T) {
	assert.Equal(t, "Only 3 left in stock!", T(English, "scarcity", map[string]any{"stock": 3}))
	assert.Equal(t, "بقي 3 قطع فقط!", T(Arabic, "scarcity", map[string]any{"stock": 3}))
}

func TestT_UnknownKeyAndLang(t *testing.T) {
	assert.Equal(t, "no_such_key", T(English, "no_such_key", nil))
	assert.Equal(t, "Your bag is empty", T(Lang("fr"), "bag_empty", nil))
}

func TestLang(t *testing.T) {
	assert.Equal(t, English, Parse(""))
	assert.Equal(t, English, Parse("de"))
	assert.Equal(t, Arabic, Parse("ar"))

	assert.Equal(t, Arabic, English.Toggle())
	assert.Equal(t, English, Arabic.Toggle())
	assert.Equal(t, English, English.Toggle().Toggle())

	assert.Equal(t, "rtl", Arabic.Dir())
	assert.Equal(t, "ltr", English.Dir())
}

func TestCatalogsHaveTheSameKeys(t *testing.T) {
	for key := range catalog[English] {
		_, ok := catalog[Arabic][key]
		assert.True(t, ok, "missing arabic translation for %s", key)
	}
	assert.Len(t, catalog[Arabic], len(catalog[English]))
	assert.True(t, Has("liked"))
	assert.False(t, Has("nope"))
}
