package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranamart/storefront-client/models"
)

var (
	dairy  = models.Category{ID: "c1", Name: "Dairy"}
	bakery = models.Category{ID: "c2", Name: "Bakery"}

	testProducts = []models.Product{
		{ID: "p1", Name: "Milk", Description: "Full cream", CategoryID: "c1", Category: &dairy, Stock: 5},
		{ID: "p2", Name: "Bread", Description: "Whole wheat", CategoryID: "c2", Category: &bakery, Stock: 3},
		{ID: "p3", Name: "Paneer", Description: "Fresh cottage cheese", CategoryID: "c1", Category: &dairy, Stock: 2},
		{ID: "p4", Name: "Bun", CategoryID: "c2", Category: &bakery, Stock: 0},
	}
)

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterAllAndEmptySearchReturnsEverythingInOrder(t *testing.T) {
	got := Filter(testProducts, AllCategories, "")
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(got))
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(testProducts, "c1", "")
	assert.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestFilterBySearch(t *testing.T) {
	// matches name, case-insensitively
	assert.Equal(t, []string{"p1"}, ids(Filter(testProducts, AllCategories, "mIlK")))

	// matches description
	assert.Equal(t, []string{"p3"}, ids(Filter(testProducts, AllCategories, "cottage")))

	// matches category name
	assert.Equal(t, []string{"p2", "p4"}, ids(Filter(testProducts, AllCategories, "bakery")))

	// whitespace-only query is no filter
	assert.Len(t, Filter(testProducts, AllCategories, "   "), 4)
}

func TestFilterCombinesCategoryAndSearch(t *testing.T) {
	got := Filter(testProducts, "c2", "bun")
	assert.Equal(t, []string{"p4"}, ids(got))

	assert.Empty(t, Filter(testProducts, "c1", "bread"))
}

func TestCountByCategoryIgnoresFilters(t *testing.T) {
	counts := CountByCategory(testProducts)
	assert.Equal(t, map[string]int{"c1": 2, "c2": 2}, counts)
}

func TestViewModelDerivedViews(t *testing.T) {
	vm := NewViewModel(nil, nil)
	vm.products = testProducts
	vm.categories = []models.Category{dairy, bakery}

	vm.SetSearch("milk")
	vm.SetCategory("c1")

	assert.Equal(t, []string{"p1"}, ids(vm.Filtered()))
	// counts keep reflecting the whole catalog regardless of filters
	assert.Equal(t, map[string]int{"c1": 2, "c2": 2}, vm.CountsByCategory())

	// empty category selection falls back to all
	vm.SetCategory("")
	vm.SetSearch("")
	assert.Equal(t, AllCategories, vm.CategoryID())
	assert.Len(t, vm.Filtered(), 4)
}

func TestFindProduct(t *testing.T) {
	vm := NewViewModel(nil, nil)
	vm.products = testProducts

	p, found := vm.FindProduct("p3")
	require.True(t, found)
	assert.Equal(t, "Paneer", p.Name)

	_, found = vm.FindProduct("nope")
	assert.False(t, found)
}
