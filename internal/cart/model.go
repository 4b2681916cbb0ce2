package cart

// Item is a product snapshot taken when it was added. Its price never follows later
// catalog changes.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}
