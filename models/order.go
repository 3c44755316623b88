package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses (server-owned lifecycle)
	OrderStatusPending   OrderStatus = "PENDING"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // Confirmed by the shop
	OrderStatusShipped   OrderStatus = "SHIPPED"   // Out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // Customer received the items
	OrderStatusCancelled OrderStatus = "CANCELLED" // Cancelled before delivery

	// Payment statuses
	PaymentStatusPendingVerification PaymentStatus = "PENDING_VERIFICATION"
	PaymentStatusVerified            PaymentStatus = "VERIFIED"
	PaymentStatusFailed              PaymentStatus = "FAILED"

	// Payment methods
	PaymentMethodUPIQR PaymentMethod = "UPI_QR"
	PaymentMethodCOD   PaymentMethod = "COD"
)

// ParseOrderStatus maps a string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(status)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// ParsePaymentStatus maps a string to a PaymentStatus.
func ParsePaymentStatus(status string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToUpper(status)) {
	case PaymentStatusPendingVerification:
		return PaymentStatusPendingVerification, nil
	case PaymentStatusVerified:
		return PaymentStatusVerified, nil
	case PaymentStatusFailed:
		return PaymentStatusFailed, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Product   struct {
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl,omitempty"`
	} `json:"product"`
}

type OrderCustomer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Order is server-owned; the client only reads it and requests
// transitions through the gateway.
type Order struct {
	ID             string           `json:"id"`
	Status         OrderStatus      `json:"status"`
	PaymentStatus  PaymentStatus    `json:"paymentStatus,omitempty"`
	PaymentMethod  PaymentMethod    `json:"paymentMethod,omitempty"`
	Total          float64          `json:"total"`
	SubtotalAmount float64          `json:"subtotalAmount,omitempty"`
	DeliveryCharge float64          `json:"deliveryCharge,omitempty"`
	Items          []OrderItem      `json:"items"`
	Customer       *OrderCustomer   `json:"customer,omitempty"`
	Address        *DeliveryAddress `json:"address,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
