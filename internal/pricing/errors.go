package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrPriceNotFound matches any PriceNotFoundError.
	ErrPriceNotFound = errors.New("price not found")
	// ErrInvalidQuantity is returned when pricing a negative quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrNegativePrice is returned at construction when a unit price is below zero.
	ErrNegativePrice = errors.New("negative unit price")
	// ErrInvalidDiscountRule is returned at construction for a rule with a non-positive bundle size or a negative bundle price.
	ErrInvalidDiscountRule = errors.New("invalid discount rule")
	// ErrUnknownStrategy indicates an unrecognised strategy kind.
	ErrUnknownStrategy = errors.New("unknown pricing strategy")
)

// PriceNotFoundError reports a SKU that has no configured unit price.
type PriceNotFoundError struct {
	SKU string
}

// Error implements the error interface.
func (e *PriceNotFoundError) Error() string {
	return fmt.Sprintf("no price configured for item %q", e.SKU)
}

// Is lets errors.Is match ErrPriceNotFound.
func (e *PriceNotFoundError) Is(target error) bool {
	return target == ErrPriceNotFound
}
