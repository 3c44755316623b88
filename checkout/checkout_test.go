package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranamart/storefront-client/cart"
	"github.com/kiranamart/storefront-client/checkout"
	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/gateway/gatewaytest"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/session"
)

type memTokens struct{ token string }

func (m *memTokens) SaveSessionToken(token string) error { m.token = token; return nil }
func (m *memTokens) LoadSessionToken() (string, error)   { return m.token, nil }
func (m *memTokens) ClearSessionToken() error            { m.token = ""; return nil }

var goodAddress = models.DeliveryAddress{
	Street:     "12 MG Road",
	Phone:      "9876543210",
	City:       "Pune",
	State:      "MH",
	PostalCode: "411001",
}

type fixture struct {
	srv      *gatewaytest.Server
	cart     *cart.Cart
	session  *session.Controller
	checkout *checkout.Controller
}

func setup(t *testing.T) *fixture {
	t.Helper()
	srv := gatewaytest.New()
	t.Cleanup(srv.Close)
	srv.Products = []models.Product{
		{ID: "p1", Name: "Milk", Price: 100, Stock: 5},
		{ID: "p2", Name: "Bread", Price: 50, Stock: 5},
	}
	srv.AddCustomer("Asha", "9876543210")

	gw := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
	c := cart.New()
	sess := session.NewController(gw, &memTokens{}, nil)
	return &fixture{
		srv:      srv,
		cart:     c,
		session:  sess,
		checkout: checkout.NewController(c, sess, gw, nil),
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	_, err := f.session.Login(context.Background(), "9876543210")
	require.NoError(t, err)
}

func (f *fixture) fillCart() {
	f.cart.Add(models.Product{ID: "p1", Name: "Milk", Price: 100, Stock: 5})
	f.cart.Add(models.Product{ID: "p1", Name: "Milk", Price: 100, Stock: 5})
	f.cart.Add(models.Product{ID: "p2", Name: "Bread", Price: 50, Stock: 5})
}

func TestValidationRejectsBeforeAnyNetworkCall(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture, t *testing.T)
		want    error
	}{
		{
			name:    "guest cannot submit",
			prepare: func(f *fixture, t *testing.T) { f.fillCart(); f.checkout.SetAddress(goodAddress) },
			want:    checkout.ErrLoginRequired,
		},
		{
			name:    "empty cart",
			prepare: func(f *fixture, t *testing.T) { f.login(t); f.checkout.SetAddress(goodAddress) },
			want:    checkout.ErrCartEmpty,
		},
		{
			name: "missing street",
			prepare: func(f *fixture, t *testing.T) {
				f.login(t)
				f.fillCart()
				addr := goodAddress
				addr.Street = ""
				f.checkout.SetAddress(addr)
			},
			want: checkout.ErrAddressIncomplete,
		},
		{
			name: "phone not ten digits",
			prepare: func(f *fixture, t *testing.T) {
				f.login(t)
				f.fillCart()
				addr := goodAddress
				addr.Phone = "12345"
				f.checkout.SetAddress(addr)
			},
			want: checkout.ErrInvalidPhone,
		},
		{
			name: "pincode not six digits",
			prepare: func(f *fixture, t *testing.T) {
				f.login(t)
				f.fillCart()
				addr := goodAddress
				addr.PostalCode = "1234567"
				f.checkout.SetAddress(addr)
			},
			want: checkout.ErrInvalidPincode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.prepare(f, t)

			_, err := f.checkout.Submit(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, checkout.StateEditing, f.checkout.State())
			assert.Equal(t, 0, f.srv.CreateOrderCalls, "no submission may reach the gateway")
		})
	}
}

func TestSubmitSuccessClearsCartAndNotifies(t *testing.T) {
	f := setup(t)
	f.login(t)
	f.fillCart()
	f.checkout.SetAddress(goodAddress)
	f.checkout.SetPaymentMethod(models.PaymentMethodCOD)

	notified := false
	f.checkout.OnSubmitted = func(ctx context.Context, order *models.Order) {
		notified = true
		assert.NotEmpty(t, order.ID)
	}

	order, err := f.checkout.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 250.0, order.Total)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)

	assert.True(t, f.cart.Empty(), "cart is cleared on success")
	assert.Equal(t, checkout.StateSubmitted, f.checkout.State())
	assert.True(t, notified)
	// the draft address is consumed, country default survives
	assert.Equal(t, models.DeliveryAddress{Country: models.DefaultCountry}, f.checkout.Address())
}

func TestSubmitGatewayFailureReturnsToEditing(t *testing.T) {
	f := setup(t)
	f.login(t)
	f.fillCart()
	f.checkout.SetAddress(goodAddress)
	f.srv.FailCreateOrder = "stock changed, refresh your cart"

	_, err := f.checkout.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "stock changed, refresh your cart", err.Error())

	assert.Equal(t, checkout.StateEditing, f.checkout.State())
	assert.False(t, f.cart.Empty(), "cart survives a failed submission")

	// the draft can be resubmitted once the backend recovers
	f.srv.FailCreateOrder = ""
	f.checkout.SetAddress(goodAddress)
	_, err = f.checkout.Submit(context.Background())
	require.NoError(t, err)
}

func TestResetRestoresDefaults(t *testing.T) {
	f := setup(t)
	f.checkout.SetAddress(goodAddress)
	f.checkout.SetPaymentMethod(models.PaymentMethodCOD)

	f.checkout.Reset()

	assert.Equal(t, checkout.StateEditing, f.checkout.State())
	assert.Equal(t, models.DeliveryAddress{Country: models.DefaultCountry}, f.checkout.Address())
	assert.Equal(t, models.PaymentMethodUPIQR, f.checkout.PaymentMethod())
}

func TestBlankCountryFallsBackToDefault(t *testing.T) {
	f := setup(t)
	f.checkout.SetAddress(goodAddress)
	assert.Equal(t, models.DefaultCountry, f.checkout.Address().Country)
}
