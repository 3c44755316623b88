// Package admin is the back-office catalog management controller:
// product and category CRUD through the gateway, with the catalog
// view model reloaded after every successful change.
package admin

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/catalog"
	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/session"
)

var ErrAdminRequired = errors.New("admin login required")

type Catalog struct {
	gw      *gateway.Client
	session *session.Controller
	catalog *catalog.ViewModel
	log     *logrus.Entry
}

func NewCatalog(gw *gateway.Client, s *session.Controller, vm *catalog.ViewModel, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Catalog{
		gw:      gw,
		session: s,
		catalog: vm,
		log:     logger.WithField("component", "admin-catalog"),
	}
}

func (a *Catalog) guard() error {
	if a.session.Role() != models.RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}

func (a *Catalog) CreateProduct(ctx context.Context, input gateway.ProductInput) error {
	if err := a.guard(); err != nil {
		return err
	}
	product, err := a.gw.CreateProduct(ctx, input)
	if err != nil {
		return err
	}
	a.log.WithField("product_id", product.ID).Info("Product created")
	return a.catalog.Reload(ctx)
}

func (a *Catalog) UpdateProduct(ctx context.Context, productID string, input gateway.ProductInput) error {
	if err := a.guard(); err != nil {
		return err
	}
	if _, err := a.gw.UpdateProduct(ctx, productID, input); err != nil {
		return err
	}
	a.log.WithField("product_id", productID).Info("Product updated")
	return a.catalog.Reload(ctx)
}

func (a *Catalog) DeleteProduct(ctx context.Context, productID string) error {
	if err := a.guard(); err != nil {
		return err
	}
	if err := a.gw.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	a.log.WithField("product_id", productID).Info("Product deleted")
	return a.catalog.Reload(ctx)
}

func (a *Catalog) CreateCategory(ctx context.Context, name string) error {
	if err := a.guard(); err != nil {
		return err
	}
	category, err := a.gw.CreateCategory(ctx, name)
	if err != nil {
		return err
	}
	a.log.WithField("category_id", category.ID).Info("Category created")
	return a.catalog.Reload(ctx)
}

func (a *Catalog) UpdateCategory(ctx context.Context, categoryID, name string) error {
	if err := a.guard(); err != nil {
		return err
	}
	if _, err := a.gw.UpdateCategory(ctx, categoryID, name); err != nil {
		return err
	}
	a.log.WithField("category_id", categoryID).Info("Category updated")
	return a.catalog.Reload(ctx)
}

func (a *Catalog) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := a.guard(); err != nil {
		return err
	}
	if err := a.gw.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	a.log.WithField("category_id", categoryID).Info("Category deleted")
	return a.catalog.Reload(ctx)
}
