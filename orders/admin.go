package orders

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/session"
)

var (
	ErrAdminRequired     = errors.New("admin login required")
	ErrPaymentUnverified = errors.New("payment not verified")
	ErrUnknownOrder      = errors.New("order not found")
)

// CanAdvance reports whether an order may move forward through
// confirmation, shipping and delivery. UPI orders are held until the
// payment is verified; cash on delivery is exempt.
func CanAdvance(o models.Order) bool {
	return o.PaymentMethod == models.PaymentMethodCOD || o.PaymentStatus == models.PaymentStatusVerified
}

// NextStatus gives the forward transition for an order status.
// Terminal and cancelled statuses have none.
func NextStatus(status models.OrderStatus) (models.OrderStatus, bool) {
	switch status {
	case models.OrderStatusPending:
		return models.OrderStatusConfirmed, true
	case models.OrderStatusConfirmed:
		return models.OrderStatusShipped, true
	case models.OrderStatusShipped:
		return models.OrderStatusDelivered, true
	default:
		return "", false
	}
}

func advances(status models.OrderStatus) bool {
	switch status {
	case models.OrderStatusConfirmed, models.OrderStatusShipped, models.OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// AdminList caches all orders for the back office and runs the
// status and payment transitions.
type AdminList struct {
	gw      *gateway.Client
	session *session.Controller
	log     *logrus.Entry
	orders  []models.Order
	loading bool
	epoch   int
}

func NewAdminList(gw *gateway.Client, s *session.Controller, logger *logrus.Logger) *AdminList {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AdminList{
		gw:      gw,
		session: s,
		log:     logger.WithField("component", "admin-orders"),
	}
}

func (l *AdminList) Orders() []models.Order {
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *AdminList) Loading() bool { return l.loading }

// Find returns the cached order with the given id.
func (l *AdminList) Find(orderID string) (models.Order, bool) {
	for _, o := range l.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// Reload fetches all orders. Non-admin sessions are a no-op and a
// 401 stays silent, mirroring the customer list.
func (l *AdminList) Reload(ctx context.Context) error {
	if l.session.Role() != models.RoleAdmin {
		return nil
	}
	l.loading = true
	epoch := l.epoch

	fetched, err := l.gw.AdminOrders(ctx)
	l.loading = false

	if epoch != l.epoch {
		return nil
	}
	if err != nil {
		if gateway.IsUnauthorized(err) {
			return nil
		}
		return err
	}
	l.orders = fetched
	return nil
}

// Clear drops the cached list and invalidates any reload in flight.
func (l *AdminList) Clear() {
	l.orders = nil
	l.epoch++
}

// SetStatus requests a status transition. Forward transitions are
// guarded by CanAdvance; cancellation is always allowed and gets a
// default reason when none is given.
func (l *AdminList) SetStatus(ctx context.Context, orderID string, status models.OrderStatus, cancelReason string) error {
	if l.session.Role() != models.RoleAdmin {
		return ErrAdminRequired
	}
	order, found := l.Find(orderID)
	if !found {
		return ErrUnknownOrder
	}
	if advances(status) && !CanAdvance(order) {
		return ErrPaymentUnverified
	}
	if status == models.OrderStatusCancelled && cancelReason == "" {
		cancelReason = "Cancelled by admin"
	}

	if _, err := l.gw.UpdateOrderStatus(ctx, orderID, status, cancelReason); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{"order_id": orderID, "status": status}).Info("Order status updated")
	return l.Reload(ctx)
}

// SetPaymentStatus records the outcome of a manual payment check.
func (l *AdminList) SetPaymentStatus(ctx context.Context, orderID string, status models.PaymentStatus) error {
	if l.session.Role() != models.RoleAdmin {
		return ErrAdminRequired
	}
	if _, err := l.gw.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return err
	}
	l.log.WithFields(logrus.Fields{"order_id": orderID, "payment_status": status}).Info("Payment status updated")
	return l.Reload(ctx)
}

// VerifyPayment marks a UPI payment as verified, unblocking the
// forward transitions for that order.
func (l *AdminList) VerifyPayment(ctx context.Context, orderID string) error {
	return l.SetPaymentStatus(ctx, orderID, models.PaymentStatusVerified)
}
