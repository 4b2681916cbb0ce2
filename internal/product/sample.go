package product

var sampleProducts = []Product{
	{
		ID:          "p1",
		Title:       "Minimalist Cotton Tee",
		Price:       "2,500 DA",
		Images:      []string{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=800"},
		Stock:       12,
		Description: "A comfortable, breathable cotton tee perfect for everyday wear. Made from 100% organic cotton.",
		Category:    DefaultCategory,
	},
	{
		ID:          "p2",
		Title:       "Urban Denim Jacket",
		Price:       "5,800 DA",
		Images:      []string{"https://images.unsplash.com/photo-1523205771623-e0faa4d2813d?auto=format&fit=crop&q=80&w=800"},
		Stock:       5,
		Description: "Classic denim jacket with a modern twist. Features durable stitching and a relaxed fit.",
		Category:    DefaultCategory,
	},
	{
		ID:          "p3",
		Title:       "Classic White Sneakers",
		Price:       "4,200 DA",
		Images:      []string{"https://images.unsplash.com/photo-1549298916-b41d501d3772?auto=format&fit=crop&q=80&w=800"},
		Stock:       3,
		Description: "Versatile white sneakers that go with everything. High comfort sole for all-day walking.",
		Category:    DefaultCategory,
	},
	{
		ID:          "p4",
		Title:       "Leather Crossbody Bag",
		Price:       "3,900 DA",
		Images:      []string{"https://images.unsplash.com/photo-1548036328-c9fa89d128fa?auto=format&fit=crop&q=80&w=800"},
		Stock:       15,
		Description: "Premium faux leather bag with adjustable strap. Spacious enough for your essentials.",
		Category:    DefaultCategory,
	},
	{
		ID:          "p5",
		Title:       "Summer Floral Dress",
		Price:       "3,200 DA",
		Images:      []string{"https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?auto=format&fit=crop&q=80&w=800"},
		Stock:       8,
		Description: "Lightweight floral dress perfect for hot summer days. Flowy and elegant.",
		Category:    DefaultCategory,
	},
	{
		ID:          "p6",
		Title:       "Modern Sunglasses",
		Price:       "1,500 DA",
		Images:      []string{"https://images.unsplash.com/photo-1577803645773-f96470509666?auto=format&fit=crop&q=80&w=800"},
		Stock:       20,
		Description: "UV protection with a trendy frame design to complete your look.",
		Category:    DefaultCategory,
	},
}

// SampleProducts returns a fresh copy of the built-in demo catalog.
func SampleProducts() []Product {
	out := make([]Product, len(sampleProducts))
	for i, p := range sampleProducts {
		p.Images = append([]string(nil), p.Images...)
		out[i] = p
	}
	return out
}

// SampleByID looks a demo product up by its ID.
func SampleByID(id string) (Product, bool) {
	for _, p := range SampleProducts() {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
