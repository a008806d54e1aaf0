package pricing

import (
	"fmt"
	"maps"
	"strings"
)

// Money represents a monetary value stored in minor units.
type Money = int64

// PriceTable maps a SKU to its unit price.
type PriceTable map[string]Money

// DiscountTable maps a SKU to its bundle discount rule.
type DiscountTable map[string]DiscountRule

// Strategy converts a quantity of a single SKU into the amount charged for it.
type Strategy interface {
	Price(sku string, qty int) (Money, error)
}

// Kind names one of the available pricing strategies.
type Kind string

const (
	KindFlat Kind = "flat"
	KindBulk Kind = "bulk"
)

// ParseKind resolves a strategy name, ignoring case and surrounding whitespace.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case "", KindFlat:
		return KindFlat, nil
	case KindBulk:
		return KindBulk, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, value)
	}
}

// New builds the strategy named by kind. Discounts are ignored by the flat strategy.
func New(kind Kind, prices PriceTable, discounts DiscountTable) (Strategy, error) {
	switch kind {
	case KindFlat:
		return NewFlatStrategy(prices)
	case KindBulk:
		return NewBulkStrategy(prices, discounts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
}

func clonePrices(prices PriceTable) PriceTable {
	if prices == nil {
		return PriceTable{}
	}
	return maps.Clone(prices)
}

func flatPrice(prices PriceTable, sku string, qty int) (Money, error) {
	unit, ok := prices[sku]
	if !ok {
		return 0, &PriceNotFoundError{SKU: sku}
	}
	if qty < 0 {
		return 0, fmt.Errorf("%w: %d for %q", ErrInvalidQuantity, qty, sku)
	}
	return unit * Money(qty), nil
}
