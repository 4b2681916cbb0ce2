package cart

import (
	"shopyz-be/internal/pricing"
)

// Cart is an ordered list of items. Duplicates are allowed; each add is its own line.
// A Cart is not safe for concurrent use; its owner serializes access.
type Cart struct {
	items []Item
}

// New builds a cart from stored items.
func New(items []Item) *Cart {
	return &Cart{items: append([]Item(nil), items...)}
}

func (c *Cart) Add(item Item) error {
	if item.ID == "" || item.Price == "" {
		return ErrInvalidItem
	}
	c.items = append(c.items, item)
	return nil
}

// Remove drops the item at index.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal sums the parsed display prices.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.items {
		total += pricing.ParseAmount(it.Price)
	}
	return total
}
