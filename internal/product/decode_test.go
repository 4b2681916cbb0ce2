package product

import (
	"testing"

	"shopyz-be/internal/realtime"

	"github.com/stretchr/testify/assert"
)

func TestDecode_Defaults(t *testing.T) {
	snap := realtime.Snapshot{Key: "x", Value: map[string]any{
		"stock":  "12",
		"images": "not-a-list",
	}}

	p := Decode("x", snap)
	assert.Equal(t, Product{
		ID:       "x",
		Title:    DefaultTitle,
		Price:    DefaultPrice,
		Stock:    0,
		Images:   []string{},
		Category: DefaultCategory,
	}, p)
}

func TestDecode_FullRecord(t *testing.T) {
	snap := realtime.Snapshot{Key: "p9", Value: map[string]any{
		"title":       "Scarf",
		"price":       "900 DA",
		"stock":       float64(7),
		"description": "Wool",
		"images":      []any{"a.jpg", float64(3), "b.jpg"},
		"category":    "Women",
	}}

	p := Decode("p9", snap)
	assert.Equal(t, "Scarf", p.Title)
	assert.Equal(t, "900 DA", p.Price)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "Wool", p.Description)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
	assert.Equal(t, "Women", p.Category)
}

func TestDecodeList_NewestFirst(t *testing.T) {
	snap := realtime.Snapshot{Key: "products", Value: map[string]any{
		"-Na": map[string]any{"title": "First"},
		"-Nb": map[string]any{"title": "Second"},
		"-Nc": map[string]any{"title": "Third"},
	}}

	list := DecodeList(snap)
	titles := make([]string, 0, len(list))
	for _, p := range list {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Third", "Second", "First"}, titles)
}

func TestSampleProducts(t *testing.T) {
	samples := SampleProducts()
	assert.Len(t, samples, 6)
	assert.Equal(t, "p1", samples[0].ID)
	assert.Equal(t, "2,500 DA", samples[0].Price)

	samples[0].Images[0] = "mutated"
	p1, ok := SampleByID("p1")
	assert.True(t, ok)
	assert.NotEqual(t, "mutated", p1.Images[0])

	_, ok = SampleByID("nope")
	assert.False(t, ok)
}
