package pricing

import (
	"errors"
	"fmt"
	"maps"

	validator "github.com/go-playground/validator/v10"
)

// DiscountRule prices every BundleSize units of an item at BundlePrice in total.
type DiscountRule struct {
	BundleSize  int   `validate:"gt=0"`
	BundlePrice Money `validate:"gte=0"`
}

var validate = validator.New()

// Validate checks the rule can be applied.
func (r DiscountRule) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDiscountRule, err)
	}
	return nil
}

// BulkStrategy applies "N for P" bundle rules, falling back to flat pricing for
// SKUs without a rule and for the units left over after full bundles.
type BulkStrategy struct {
	prices    PriceTable
	discounts DiscountTable
}

// NewBulkStrategy validates and copies both tables.
func NewBulkStrategy(prices PriceTable, discounts DiscountTable) (*BulkStrategy, error) {
	errs := []error{validatePrices(prices)}
	for _, sku := range sortedKeys(discounts) {
		if err := discounts[sku].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sku %q: %w", sku, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	d := DiscountTable{}
	if discounts != nil {
		d = maps.Clone(discounts)
	}
	return &BulkStrategy{prices: clonePrices(prices), discounts: d}, nil
}

// Price implements Strategy.
func (s *BulkStrategy) Price(sku string, qty int) (Money, error) {
	rule, ok := s.discounts[sku]
	if !ok {
		return flatPrice(s.prices, sku, qty)
	}
	unit, ok := s.prices[sku]
	if !ok {
		return 0, &PriceNotFoundError{SKU: sku}
	}
	if qty < 0 {
		return 0, fmt.Errorf("%w: %d for %q", ErrInvalidQuantity, qty, sku)
	}
	bundles := qty / rule.BundleSize
	remainder := qty % rule.BundleSize
	return Money(remainder)*unit + Money(bundles)*rule.BundlePrice, nil
}

// UnitPrice returns the configured unit price for sku.
func (s *BulkStrategy) UnitPrice(sku string) (Money, bool) {
	p, ok := s.prices[sku]
	return p, ok
}

// Rule returns the discount rule for sku, if any.
func (s *BulkStrategy) Rule(sku string) (DiscountRule, bool) {
	r, ok := s.discounts[sku]
	return r, ok
}
