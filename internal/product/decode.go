package product

import (
	"shopyz-be/internal/realtime"
)

// Decode builds a Product from a loosely typed record, filling defaults for every
// missing or mistyped field.
func Decode(id string, snap realtime.Snapshot) Product {
	p := Product{
		ID:       id,
		Title:    DefaultTitle,
		Price:    DefaultPrice,
		Images:   []string{},
		Category: DefaultCategory,
	}

	if s, ok := snap.Child("title").Value.(string); ok && s != "" {
		p.Title = s
	}
	if s, ok := snap.Child("price").Value.(string); ok && s != "" {
		p.Price = s
	}
	if n, ok := snap.Child("stock").Value.(float64); ok {
		p.Stock = int(n)
	}
	if s, ok := snap.Child("description").Value.(string); ok {
		p.Description = s
	}
	if s, ok := snap.Child("category").Value.(string); ok && s != "" {
		p.Category = s
	}
	if arr, ok := snap.Child("images").Value.([]any); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				p.Images = append(p.Images, s)
			}
		}
	}
	return p
}

// DecodeList decodes every child of a products snapshot, newest first. Push keys sort
// chronologically, so reversing key order puts the latest insert on top.
func DecodeList(snap realtime.Snapshot) []Product {
	children := snap.Children()
	out := make([]Product, 0, len(children))
	for i := len(children) - 1; i >= 0; i-- {
		out = append(out, Decode(children[i].Key, children[i]))
	}
	return out
}
