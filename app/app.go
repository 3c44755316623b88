// Package app wires the storefront core together and handles the
// flows that cut across controllers: startup restoration, logout,
// gated navigation and cart persistence.
package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/admin"
	"github.com/kiranamart/storefront-client/cart"
	"github.com/kiranamart/storefront-client/catalog"
	"github.com/kiranamart/storefront-client/checkout"
	"github.com/kiranamart/storefront-client/config"
	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/orders"
	"github.com/kiranamart/storefront-client/pricing"
	"github.com/kiranamart/storefront-client/session"
	"github.com/kiranamart/storefront-client/store"
)

type App struct {
	Config       config.Config
	Store        *store.Store
	Gateway      *gateway.Client
	Cart         *cart.Cart
	Catalog      *catalog.ViewModel
	Session      *session.Controller
	Checkout     *checkout.Controller
	MyOrders     *orders.CustomerList
	AdminOrders  *orders.AdminList
	AdminCatalog *admin.Catalog

	area session.Area
	log  *logrus.Entry
}

func New(cfg config.Config, st *store.Store, logger *logrus.Logger) *App {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	}, logger)

	crt := cart.New()
	vm := catalog.NewViewModel(gw, logger)
	sess := session.NewController(gw, st, logger)
	chk := checkout.NewController(crt, sess, gw, logger)
	my := orders.NewCustomerList(gw, sess, logger)
	adm := orders.NewAdminList(gw, sess, logger)

	a := &App{
		Config:       cfg,
		Store:        st,
		Gateway:      gw,
		Cart:         crt,
		Catalog:      vm,
		Session:      sess,
		Checkout:     chk,
		MyOrders:     my,
		AdminOrders:  adm,
		AdminCatalog: admin.NewCatalog(gw, sess, vm, logger),
		area:         session.AreaProducts,
		log:          logger.WithField("component", "app"),
	}

	crt.OnChange = a.persistCart
	chk.OnSubmitted = func(ctx context.Context, _ *models.Order) {
		if err := my.Reload(ctx); err != nil {
			a.log.Warn("Failed to reload orders after submission: ", err)
		}
	}
	return a
}

// Start restores persisted state and loads the initial data. Nothing
// here is fatal: a failed probe or fetch leaves the user browsing as
// a guest with whatever loaded.
func (a *App) Start(ctx context.Context) {
	if lines, err := a.Store.LoadCart(); err != nil {
		a.log.Warn("Failed to load persisted cart: ", err)
	} else if len(lines) > 0 {
		a.Cart.Restore(lines)
		a.log.WithField("lines", len(lines)).Info("Cart restored")
	}

	if err := a.Catalog.Reload(ctx); err != nil {
		a.log.Warn("Catalog load failed: ", err)
	}

	role := a.Session.Restore(ctx)
	a.area = session.HomeArea(role)

	switch role {
	case models.RoleCustomer:
		if err := a.MyOrders.Reload(ctx); err != nil {
			a.log.Warn("Failed to load orders: ", err)
		}
	case models.RoleAdmin:
		if err := a.AdminOrders.Reload(ctx); err != nil {
			a.log.Warn("Failed to load admin orders: ", err)
		}
	}
}

// Logout ends the session and clears everything tied to it: cart,
// order lists, draft, persisted snapshot and token.
func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
	a.Cart.Clear()
	a.MyOrders.Clear()
	a.AdminOrders.Clear()
	a.Checkout.Reset()
	a.area = session.AreaProducts
}

// Area is the currently displayed application area.
func (a *App) Area() session.Area {
	return a.area
}

// Navigate moves to the target area, redirecting to authentication
// when the current role is not allowed there.
func (a *App) Navigate(target session.Area) session.Area {
	a.area = session.Resolve(a.Session.Role(), target)
	return a.area
}

// AddToCart adds a catalog product by id. It reports false for
// unknown ids and out-of-stock products.
func (a *App) AddToCart(productID string) bool {
	product, found := a.Catalog.FindProduct(productID)
	if !found {
		return false
	}
	return a.Cart.Add(product)
}

// Totals recomputes cart pricing under the configured policy.
func (a *App) Totals() pricing.Totals {
	return a.Cart.Totals(a.Config.Pricing)
}

func (a *App) persistCart() {
	if err := a.Store.SaveCart(a.Cart.Lines()); err != nil {
		a.log.Warn("Failed to persist cart: ", err)
	}
}
