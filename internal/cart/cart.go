package cart

import (
	"slices"
	"strings"
)

// Item is one distinct SKU and the number of units scanned.
type Item struct {
	SKU string
	Qty int
}

// Cart tallies scanned units per SKU. It is not safe for concurrent use.
type Cart struct {
	counts map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{counts: make(map[string]int)}
}

// Add records one more unit of sku.
func (c *Cart) Add(sku string) {
	c.counts[sku]++
}

// Quantity returns the units scanned for sku, or zero.
func (c *Cart) Quantity(sku string) int {
	return c.counts[sku]
}

// Len returns the number of distinct SKUs.
func (c *Cart) Len() int {
	return len(c.counts)
}

// Units returns the total number of scanned units.
func (c *Cart) Units() int {
	var n int
	for _, qty := range c.counts {
		n += qty
	}
	return n
}

// Items returns a snapshot of the cart ordered by SKU.
func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.counts))
	for sku, qty := range c.counts {
		items = append(items, Item{SKU: sku, Qty: qty})
	}
	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(a.SKU, b.SKU)
	})
	return items
}
