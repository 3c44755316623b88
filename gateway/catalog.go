package gateway

import (
	"context"
	"net/http"

	"github.com/kiranamart/storefront-client/models"
)

// GET /api/products
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var out struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GET /api/categories
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
