// Package cart owns the in-memory shopping cart. All mutation goes
// through the named operations; the slice keeps catalog insertion
// order so the UI renders lines in the order they were added.
package cart

import (
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/pricing"
)

type Cart struct {
	lines []models.CartLine

	// OnChange, when set, runs after every mutation that changed the
	// cart. Used by the app layer to persist the snapshot.
	OnChange func()
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product in the cart. An out-of-stock
// product is a no-op and Add reports false. Adding a product that is
// already in the cart increments its line instead of creating a
// second one.
func (c *Cart) Add(p models.Product) bool {
	if !p.InStock() {
		return false
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			c.changed()
			return true
		}
	}
	c.lines = append(c.lines, models.CartLine{Product: p, Quantity: 1})
	c.changed()
	return true
}

// ChangeQuantity adds delta to the matching line's quantity, clamped
// at zero. A line that reaches zero is removed. Unknown product ids
// are a no-op.
func (c *Cart) ChangeQuantity(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		qty := c.lines[i].Quantity + delta
		if qty < 0 {
			qty = 0
		}
		if qty == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		c.changed()
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = nil
	c.changed()
}

// Restore replaces the cart contents with a previously persisted
// snapshot. Zero-quantity lines are dropped rather than restored.
func (c *Cart) Restore(lines []models.CartLine) {
	c.lines = nil
	for _, line := range lines {
		if line.Quantity > 0 {
			c.lines = append(c.lines, line)
		}
	}
}

// Count is the sum of all line quantities, used for the cart badge.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals recomputes pricing from the current contents.
func (c *Cart) Totals(p pricing.Policy) pricing.Totals {
	return pricing.Compute(c.lines, p)
}

func (c *Cart) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
