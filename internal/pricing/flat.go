package pricing

import (
	"errors"
	"fmt"
	"slices"
)

// FlatStrategy charges unit price times quantity.
type FlatStrategy struct {
	prices PriceTable
}

// NewFlatStrategy validates and copies the price table.
func NewFlatStrategy(prices PriceTable) (*FlatStrategy, error) {
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	return &FlatStrategy{prices: clonePrices(prices)}, nil
}

// Price implements Strategy.
func (s *FlatStrategy) Price(sku string, qty int) (Money, error) {
	return flatPrice(s.prices, sku, qty)
}

// UnitPrice returns the configured unit price for sku.
func (s *FlatStrategy) UnitPrice(sku string) (Money, bool) {
	p, ok := s.prices[sku]
	return p, ok
}

func validatePrices(prices PriceTable) error {
	var errs []error
	for _, sku := range sortedKeys(prices) {
		if prices[sku] < 0 {
			errs = append(errs, fmt.Errorf("sku %q: %w", sku, ErrNegativePrice))
		}
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
