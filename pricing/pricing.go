// Package pricing computes cart totals from a delivery-charge policy.
// Everything here is pure; callers recompute on every read instead of
// caching totals next to the cart.
package pricing

import (
	"fmt"
	"strconv"

	"github.com/kiranamart/storefront-client/models"
)

// Policy is the static delivery-fee configuration: orders at or above
// FreeThreshold ship free, everything below pays FlatCharge.
type Policy struct {
	FreeThreshold float64
	FlatCharge    float64
}

// DefaultPolicy matches the shop's standing offer.
var DefaultPolicy = Policy{FreeThreshold: 200, FlatCharge: 25}

type Totals struct {
	Subtotal       float64
	DeliveryCharge float64
	Total          float64
}

// DeliveryCharge returns the fee for a given subtotal.
func (p Policy) DeliveryCharge(subtotal float64) float64 {
	if subtotal >= p.FreeThreshold {
		return 0
	}
	return p.FlatCharge
}

// Compute derives subtotal, delivery charge and grand total from cart
// lines. An empty cart yields a zero subtotal and still pays the flat
// charge when the free threshold is above zero.
func Compute(lines []models.CartLine, p Policy) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}
	charge := p.DeliveryCharge(subtotal)
	return Totals{
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          subtotal + charge,
	}
}

// FormatINR renders an amount the way the app displays prices, whole
// rupees with a currency prefix.
func FormatINR(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("₹%d", int64(amount))
	}
	return "₹" + strconv.FormatFloat(amount, 'f', 2, 64)
}
