// Package checkout manages the order draft: delivery address, payment
// method and the submit lifecycle. Every validation runs locally and
// in order before the gateway is touched; the first failure stops the
// submission.
package checkout

import (
	"context"
	"errors"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/cart"
	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/session"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var (
	ErrLoginRequired     = errors.New("login required")
	ErrCartEmpty         = errors.New("cart empty")
	ErrAddressIncomplete = errors.New("address incomplete")
	ErrInvalidPhone      = errors.New("invalid phone")
	ErrInvalidPincode    = errors.New("invalid pincode")
	ErrSubmitInFlight    = errors.New("order submission already in progress")
	ErrDraftSuperseded   = errors.New("draft no longer active")
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

type Controller struct {
	cart    *cart.Cart
	session *session.Controller
	gw      *gateway.Client
	log     *logrus.Entry

	state   State
	address models.DeliveryAddress
	payment models.PaymentMethod
	epoch   int

	// OnSubmitted runs after a successful submission, once the cart
	// has been cleared. The app layer uses it to reload the order
	// list.
	OnSubmitted func(ctx context.Context, order *models.Order)
}

func NewController(c *cart.Cart, s *session.Controller, gw *gateway.Client, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		cart:    c,
		session: s,
		gw:      gw,
		log:     logger.WithField("component", "checkout"),
		state:   StateEditing,
		address: models.DeliveryAddress{Country: models.DefaultCountry},
		payment: models.PaymentMethodUPIQR,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Address() models.DeliveryAddress { return c.address }

// SetAddress replaces the draft address. A blank country falls back
// to the default.
func (c *Controller) SetAddress(addr models.DeliveryAddress) {
	if addr.Country == "" {
		addr.Country = models.DefaultCountry
	}
	c.address = addr
}

func (c *Controller) PaymentMethod() models.PaymentMethod { return c.payment }

func (c *Controller) SetPaymentMethod(method models.PaymentMethod) {
	c.payment = method
}

// Reset abandons the draft and returns to editing. A submission still
// in flight when Reset runs will have its response discarded.
func (c *Controller) Reset() {
	c.state = StateEditing
	c.address = models.DeliveryAddress{Country: models.DefaultCountry}
	c.payment = models.PaymentMethodUPIQR
	c.epoch++
}

// Validate runs the pre-submission checks in order and returns the
// first failure.
func (c *Controller) Validate() error {
	if c.session.Role() != models.RoleCustomer {
		return ErrLoginRequired
	}
	if c.cart.Empty() {
		return ErrCartEmpty
	}
	if c.address.Street == "" || c.address.City == "" || c.address.State == "" || c.address.PostalCode == "" {
		return ErrAddressIncomplete
	}
	if !phonePattern.MatchString(c.address.Phone) {
		return ErrInvalidPhone
	}
	if !pincodePattern.MatchString(c.address.PostalCode) {
		return ErrInvalidPincode
	}
	return nil
}

// Submit validates the draft and sends it to the gateway. On success
// the cart is cleared and the draft consumed; on gateway failure the
// draft returns to editing with the server's message passed through
// verbatim.
func (c *Controller) Submit(ctx context.Context) (*models.Order, error) {
	if c.state == StateSubmitting {
		return nil, ErrSubmitInFlight
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	lines := c.cart.Lines()
	items := make([]gateway.OrderItemRequest, 0, len(lines))
	for _, line := range lines {
		items = append(items, gateway.OrderItemRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}

	c.state = StateSubmitting
	epoch := c.epoch

	order, err := c.gw.CreateOrder(ctx, gateway.CreateOrderRequest{
		DeliveryAddress: c.address,
		Items:           items,
		PaymentMethod:   c.payment,
	})

	if epoch != c.epoch {
		// The draft was reset while the call was in flight; whatever
		// came back no longer has a home.
		c.log.Info("Discarding stale order submission result")
		return nil, ErrDraftSuperseded
	}

	if err != nil {
		c.state = StateEditing
		return nil, err
	}

	c.cart.Clear()
	c.state = StateSubmitted
	c.address = models.DeliveryAddress{Country: models.DefaultCountry}
	c.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total,
		"payment":  c.payment,
	}).Info("Order placed")

	if c.OnSubmitted != nil {
		c.OnSubmitted(ctx, order)
	}
	return order, nil
}
