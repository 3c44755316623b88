package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/kiranamart/storefront-client/models"
)

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
	Items           []OrderItemRequest     `json:"items"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
}

// POST /api/orders. An idempotency key guards against the backend
// creating two orders if a submit has to be repeated after an
// ambiguous network failure.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var out struct {
		OrderID     string       `json:"orderId"`
		Order       models.Order `json:"order"`
		TotalAmount float64      `json:"totalAmount"`
	}
	headers := map[string]string{"X-Idempotency-Key": uuid.NewString()}
	if err := c.do(ctx, http.MethodPost, "/api/orders", headers, req, &out); err != nil {
		return nil, err
	}
	order := out.Order
	if order.ID == "" {
		order.ID = out.OrderID
	}
	if order.Total == 0 {
		order.Total = out.TotalAmount
	}
	return &order, nil
}

// GET /api/orders/my
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/my", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// GET /api/orders/admin. Doubles as the admin session probe since the
// backend has no dedicated admin "me" endpoint.
func (c *Client) AdminOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/admin", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

type orderPatch struct {
	Status        models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus,omitempty"`
	CancelReason  string               `json:"cancelReason,omitempty"`
}

// PATCH /api/orders/:id (status transition)
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, cancelReason string) (*models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	body := orderPatch{Status: status, CancelReason: cancelReason}
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+orderID, nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// PATCH /api/orders/:id (payment verification)
func (c *Client) UpdatePaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus) (*models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	body := orderPatch{PaymentStatus: status}
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+orderID, nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}
