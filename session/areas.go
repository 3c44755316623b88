package session

import "github.com/kiranamart/storefront-client/models"

// Area is a navigable application surface. Which areas exist for a
// role is a pure function of that role.
type Area string

const (
	AreaAuth     Area = "auth"
	AreaProducts Area = "products"
	AreaCart     Area = "cart"
	AreaCheckout Area = "checkout"
	AreaOrders   Area = "orders"
	AreaProfile  Area = "profile"

	AreaAdminDashboard  Area = "adminDashboard"
	AreaAdminOrders     Area = "adminOrders"
	AreaAdminProducts   Area = "adminProducts"
	AreaAdminCategories Area = "adminCategories"
)

var (
	guestAreas    = []Area{AreaProducts, AreaAuth}
	customerAreas = []Area{AreaProducts, AreaCart, AreaCheckout, AreaOrders, AreaProfile}
	adminAreas    = []Area{AreaAdminDashboard, AreaAdminOrders, AreaAdminProducts, AreaAdminCategories, AreaProfile}
)

// AreasFor lists the areas a role may navigate to, in tab order.
func AreasFor(role models.Role) []Area {
	switch role {
	case models.RoleCustomer:
		return customerAreas
	case models.RoleAdmin:
		return adminAreas
	default:
		return guestAreas
	}
}

// CanAccess reports whether the role may enter the area.
func CanAccess(role models.Role, area Area) bool {
	for _, allowed := range AreasFor(role) {
		if allowed == area {
			return true
		}
	}
	return false
}

// Resolve gates a navigation attempt: an ineligible target redirects
// to authentication instead of executing.
func Resolve(role models.Role, target Area) Area {
	if CanAccess(role, target) {
		return target
	}
	return AreaAuth
}

// HomeArea is where a role lands after login or startup.
func HomeArea(role models.Role) Area {
	if role == models.RoleAdmin {
		return AreaAdminDashboard
	}
	return AreaProducts
}
