package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/gateway/gatewaytest"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/orders"
	"github.com/kiranamart/storefront-client/session"
)

type memTokens struct{ token string }

func (m *memTokens) SaveSessionToken(token string) error { m.token = token; return nil }
func (m *memTokens) LoadSessionToken() (string, error)   { return m.token, nil }
func (m *memTokens) ClearSessionToken() error            { m.token = ""; return nil }

func upiOrder(id string, status models.OrderStatus, payment models.PaymentStatus) models.Order {
	return models.Order{ID: id, Status: status, PaymentStatus: payment, PaymentMethod: models.PaymentMethodUPIQR}
}

func setup(t *testing.T) (*gatewaytest.Server, *gateway.Client, *session.Controller) {
	t.Helper()
	srv := gatewaytest.New()
	t.Cleanup(srv.Close)
	gw := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
	return srv, gw, session.NewController(gw, &memTokens{}, nil)
}

func TestCanAdvance(t *testing.T) {
	cod := models.Order{PaymentMethod: models.PaymentMethodCOD, PaymentStatus: models.PaymentStatusPendingVerification}
	assert.True(t, orders.CanAdvance(cod), "COD never waits for verification")

	assert.False(t, orders.CanAdvance(upiOrder("o", models.OrderStatusPending, models.PaymentStatusPendingVerification)))
	assert.False(t, orders.CanAdvance(upiOrder("o", models.OrderStatusPending, models.PaymentStatusFailed)))
	assert.True(t, orders.CanAdvance(upiOrder("o", models.OrderStatusPending, models.PaymentStatusVerified)))
}

func TestNextStatus(t *testing.T) {
	next, ok := orders.NextStatus(models.OrderStatusPending)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusConfirmed, next)

	next, ok = orders.NextStatus(models.OrderStatusConfirmed)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusShipped, next)

	next, ok = orders.NextStatus(models.OrderStatusShipped)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusDelivered, next)

	_, ok = orders.NextStatus(models.OrderStatusDelivered)
	assert.False(t, ok)
	_, ok = orders.NextStatus(models.OrderStatusCancelled)
	assert.False(t, ok)
}

func TestCustomerReloadRequiresCustomerRole(t *testing.T) {
	_, gw, sess := setup(t)
	list := orders.NewCustomerList(gw, sess, nil)

	// guest: no-op, no error
	require.NoError(t, list.Reload(context.Background()))
	assert.Empty(t, list.Orders())
}

func TestCustomerReload(t *testing.T) {
	srv, gw, sess := setup(t)
	srv.AddCustomer("Asha", "9876543210")
	srv.Orders = []models.Order{upiOrder("ord-1", models.OrderStatusPending, models.PaymentStatusPendingVerification)}
	ctx := context.Background()

	_, err := sess.Login(ctx, "9876543210")
	require.NoError(t, err)

	list := orders.NewCustomerList(gw, sess, nil)
	require.NoError(t, list.Reload(ctx))
	require.Len(t, list.Orders(), 1)
	assert.Equal(t, "ord-1", list.Orders()[0].ID)

	list.Clear()
	assert.Empty(t, list.Orders())
}

func TestCustomerReloadTolerates401Silently(t *testing.T) {
	srv, gw, sess := setup(t)
	srv.AddCustomer("Asha", "9876543210")
	ctx := context.Background()

	_, err := sess.Login(ctx, "9876543210")
	require.NoError(t, err)

	// the backend revokes the session but the client has not noticed
	require.NoError(t, gw.CustomerLogout(ctx))

	list := orders.NewCustomerList(gw, sess, nil)
	assert.NoError(t, list.Reload(ctx), "a 401 reads as 'not logged in', not an error")
	assert.Empty(t, list.Orders())
}

func TestAdminSetStatusGuardedByPaymentVerification(t *testing.T) {
	srv, gw, sess := setup(t)
	srv.Orders = []models.Order{upiOrder("ord-1", models.OrderStatusPending, models.PaymentStatusPendingVerification)}
	ctx := context.Background()

	_, err := sess.AdminLogin(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	list := orders.NewAdminList(gw, sess, nil)
	require.NoError(t, list.Reload(ctx))

	err = list.SetStatus(ctx, "ord-1", models.OrderStatusConfirmed, "")
	assert.ErrorIs(t, err, orders.ErrPaymentUnverified)

	// the order did not move
	order, found := list.Find("ord-1")
	require.True(t, found)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// verification unblocks the forward transitions
	require.NoError(t, list.VerifyPayment(ctx, "ord-1"))
	require.NoError(t, list.SetStatus(ctx, "ord-1", models.OrderStatusConfirmed, ""))

	order, found = list.Find("ord-1")
	require.True(t, found)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentStatusVerified, order.PaymentStatus)
}

func TestAdminMarksPaymentFailed(t *testing.T) {
	srv, gw, sess := setup(t)
	srv.Orders = []models.Order{upiOrder("ord-1", models.OrderStatusPending, models.PaymentStatusPendingVerification)}
	ctx := context.Background()

	_, err := sess.AdminLogin(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	list := orders.NewAdminList(gw, sess, nil)
	require.NoError(t, list.Reload(ctx))
	require.NoError(t, list.SetPaymentStatus(ctx, "ord-1", models.PaymentStatusFailed))

	order, found := list.Find("ord-1")
	require.True(t, found)
	assert.Equal(t, models.PaymentStatusFailed, order.PaymentStatus)
	assert.ErrorIs(t, list.SetStatus(ctx, "ord-1", models.OrderStatusConfirmed, ""), orders.ErrPaymentUnverified)
}

func TestAdminCanCancelWithoutVerification(t *testing.T) {
	srv, gw, sess := setup(t)
	srv.Orders = []models.Order{upiOrder("ord-1", models.OrderStatusPending, models.PaymentStatusPendingVerification)}
	ctx := context.Background()

	_, err := sess.AdminLogin(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	list := orders.NewAdminList(gw, sess, nil)
	require.NoError(t, list.Reload(ctx))

	require.NoError(t, list.SetStatus(ctx, "ord-1", models.OrderStatusCancelled, ""))

	order, found := list.Find("ord-1")
	require.True(t, found)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestAdminCODOrderAdvancesWithoutVerification(t *testing.T) {
	srv, gw, sess := setup(t)
	srv.Orders = []models.Order{{
		ID:            "ord-2",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPendingVerification,
		PaymentMethod: models.PaymentMethodCOD,
	}}
	ctx := context.Background()

	_, err := sess.AdminLogin(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	list := orders.NewAdminList(gw, sess, nil)
	require.NoError(t, list.Reload(ctx))

	require.NoError(t, list.SetStatus(ctx, "ord-2", models.OrderStatusConfirmed, ""))
	order, _ := list.Find("ord-2")
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
}

func TestAdminActionsRequireAdminRole(t *testing.T) {
	_, gw, sess := setup(t)
	list := orders.NewAdminList(gw, sess, nil)
	ctx := context.Background()

	assert.ErrorIs(t, list.SetStatus(ctx, "ord-1", models.OrderStatusConfirmed, ""), orders.ErrAdminRequired)
	assert.ErrorIs(t, list.VerifyPayment(ctx, "ord-1"), orders.ErrAdminRequired)
	assert.ErrorIs(t, list.SetPaymentStatus(ctx, "ord-1", models.PaymentStatusFailed), orders.ErrAdminRequired)
	assert.NoError(t, list.Reload(ctx), "reload as non-admin is a silent no-op")
}

func TestSetStatusUnknownOrder(t *testing.T) {
	_, gw, sess := setup(t)
	ctx := context.Background()

	_, err := sess.AdminLogin(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	list := orders.NewAdminList(gw, sess, nil)
	assert.ErrorIs(t, list.SetStatus(ctx, "missing", models.OrderStatusCancelled, ""), orders.ErrUnknownOrder)
}
