// Package orders holds the customer and admin order controllers.
// Orders themselves are server-owned; these controllers cache the
// read models and request transitions through the gateway.
package orders

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/session"
)

// CustomerList caches the logged-in customer's orders.
type CustomerList struct {
	gw      *gateway.Client
	session *session.Controller
	log     *logrus.Entry
	orders  []models.Order
	loading bool
	epoch   int
}

func NewCustomerList(gw *gateway.Client, s *session.Controller, logger *logrus.Logger) *CustomerList {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CustomerList{
		gw:      gw,
		session: s,
		log:     logger.WithField("component", "orders"),
	}
}

func (l *CustomerList) Orders() []models.Order {
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *CustomerList) Loading() bool { return l.loading }

// Reload fetches the customer's orders. A non-customer session is a
// no-op. A 401 is treated as "not logged in" and stays silent; other
// failures surface to the caller.
func (l *CustomerList) Reload(ctx context.Context) error {
	if l.session.Role() != models.RoleCustomer {
		return nil
	}
	l.loading = true
	epoch := l.epoch

	fetched, err := l.gw.MyOrders(ctx)
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
func (l *CustomerList) Clear() {
	l.orders = nil
	l.epoch++
}
