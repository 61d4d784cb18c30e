package domain

// FavoriteEntry is a reduced product projection saved by the user,
// independent of the cart. Entries are keyed by product id with set
// semantics.
type FavoriteEntry struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// FavoriteOf builds a favorite entry from a product.
func FavoriteOf(p Product) FavoriteEntry {
	return FavoriteEntry{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.MainImage(),
		Category:    p.Category,
		Description: p.Description,
	}
}
