package models

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	MRP         float64   `json:"mrp,omitempty"` // list price, shown struck through
	Unit        string    `json:"unit,omitempty"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CategoryID  string    `json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
	IsActive    bool      `json:"isActive,omitempty"`
}

// InStock reports whether the product can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}
