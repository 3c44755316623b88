package models

// CartLine pairs a product with the quantity in the cart.
// There is at most one line per product id; a quantity of zero means
// the line does not exist.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is the price contribution of this line.
func (l CartLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}
