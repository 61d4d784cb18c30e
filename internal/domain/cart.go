package domain

// CartItem is one line of the shopping cart: a product projection plus a
// requested quantity. Quantity is always >= 1; a line that would drop to zero
// is removed instead of stored.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is price multiplied by quantity.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}

// CartLineOf builds a cart line for a product with quantity 1.
func CartLineOf(p Product) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.MainImage(),
		Category:  p.Category,
		Quantity:  1,
	}
}
