package product

// Product is a catalog record as stored under products/{id}. ID is the record key and
// is not part of the stored value.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

// record is the stored shape, without the key.
type record struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

func (p Product) record() record {
	return record{
		Title:       p.Title,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		Images:      p.Images,
		Category:    p.Category,
	}
}

// SortOrder of catalog listings.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// AllCategories disables the category filter.
const AllCategories = "All"

// Query filters a catalog listing.
type Query struct {
	Term     string
	Category string
	Sort     SortOrder
}

// NewProductInput is what an admin submits to create a product.
type NewProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Price       string   `json:"price" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// BulkEdit sets the same price and/or stock on several products. Nil fields are left
// untouched.
type BulkEdit struct {
	IDs   []string `json:"ids"`
	Price *string  `json:"price,omitempty"`
	Stock *int     `json:"stock,omitempty"`
}

const (
	DefaultTitle         = "Untitled Product"
	DefaultPrice         = "0 DA"
	DefaultCategory      = "Uncategorized"
	DefaultAdminCategory = "Men"
	PlaceholderImage     = "https://placehold.co/600?text=No+Image"
)
