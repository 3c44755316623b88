package gateway

import (
	"context"
	"net/http"

	"github.com/kiranamart/storefront-client/models"
)

// ProductInput is the admin payload for creating or patching a
// product. Untouched fields are left out of the payload; Stock and
// IsActive are pointers because their zero values are legitimate
// things to set.
type ProductInput struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	MRP         float64 `json:"mrp,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CategoryID  string  `json:"categoryId,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// POST /api/products (admin)
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	var out struct {
		Product models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, input, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// PATCH /api/products/:id (admin)
func (c *Client) UpdateProduct(ctx context.Context, productID string, input ProductInput) (*models.Product, error) {
	var out struct {
		Product models.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/products/"+productID, nil, input, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// DELETE /api/products/:id (admin)
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+productID, nil, nil, nil)
}

// POST /api/categories (admin)
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var out struct {
		Category models.Category `json:"category"`
	}
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/categories", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// PATCH /api/categories/:id (admin)
func (c *Client) UpdateCategory(ctx context.Context, categoryID, name string) (*models.Category, error) {
	var out struct {
		Category models.Category `json:"category"`
	}
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPatch, "/api/categories/"+categoryID, nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// DELETE /api/categories/:id (admin)
func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+categoryID, nil, nil, nil)
}
