// Package catalog derives the browsable product views from the raw
// catalog plus the active search and category filter. Filtering and
// counting are pure functions over the source lists; nothing is
// cached across mutations.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
)

// AllCategories is the category filter value meaning "no filter".
const AllCategories = "all"

// Filter returns the products matching the category filter and the
// case-insensitive search query. The query matches against product
// name, description and category name. Source order is preserved.
func Filter(products []models.Product, categoryID, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if categoryID != AllCategories && categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if q != "" {
			categoryName := ""
			if p.Category != nil {
				categoryName = p.Category.Name
			}
			haystack := strings.ToLower(p.Name + " " + p.Description + " " + categoryName)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// CountByCategory counts products per category over the whole
// catalog. Counts ignore the active filters so chip labels reflect
// total catalog composition.
func CountByCategory(products []models.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.CategoryID]++
	}
	return counts
}

// ViewModel holds the catalog cache and the UI filter state.
type ViewModel struct {
	gw         *gateway.Client
	log        *logrus.Entry
	products   []models.Product
	categories []models.Category
	search     string
	categoryID string
	loading    bool
}

func NewViewModel(gw *gateway.Client, logger *logrus.Logger) *ViewModel {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ViewModel{
		gw:         gw,
		log:        logger.WithField("component", "catalog"),
		categoryID: AllCategories,
	}
}

// Reload fetches products and categories from the gateway. The two
// fetches fail independently: a dead category endpoint does not throw
// away a good product list.
func (v *ViewModel) Reload(ctx context.Context) error {
	v.loading = true
	defer func() { v.loading = false }()

	var errProducts, errCategories error

	products, err := v.gw.GetProducts(ctx)
	if err != nil {
		v.log.Warn("Failed to load products: ", err)
		errProducts = err
	} else {
		v.products = products
	}

	categories, err := v.gw.GetCategories(ctx)
	if err != nil {
		v.log.Warn("Failed to load categories: ", err)
		errCategories = err
	} else {
		v.categories = categories
	}

	return errors.Join(errProducts, errCategories)
}

func (v *ViewModel) Loading() bool { return v.loading }

func (v *ViewModel) SetSearch(query string) {
	v.search = query
}

func (v *ViewModel) Search() string { return v.search }

// SetCategory selects the category filter; an empty id means all.
func (v *ViewModel) SetCategory(categoryID string) {
	if categoryID == "" {
		categoryID = AllCategories
	}
	v.categoryID = categoryID
}

func (v *ViewModel) CategoryID() string { return v.categoryID }

func (v *ViewModel) Products() []models.Product {
	out := make([]models.Product, len(v.products))
	copy(out, v.products)
	return out
}

func (v *ViewModel) Categories() []models.Category {
	out := make([]models.Category, len(v.categories))
	copy(out, v.categories)
	return out
}

// Filtered recomputes the visible product list from current state.
func (v *ViewModel) Filtered() []models.Product {
	return Filter(v.products, v.categoryID, v.search)
}

// CountsByCategory recomputes per-category counts over the unfiltered
// catalog.
func (v *ViewModel) CountsByCategory() map[string]int {
	return CountByCategory(v.products)
}

// FindProduct looks a product up by id in the loaded catalog.
func (v *ViewModel) FindProduct(productID string) (models.Product, bool) {
	for _, p := range v.products {
		if p.ID == productID {
			return p, true
		}
	}
	return models.Product{}, false
}
