package checkout

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// Line is the priced total for one distinct SKU.
type Line struct {
	SKU    string
	Qty    int
	Amount pricing.Money
}

// Receipt itemises a checkout in SKU order.
type Receipt struct {
	Lines []Line
	Total pricing.Money
}

// Checkout accumulates scanned items and prices them with a fixed strategy.
// A Checkout is owned by a single caller and is not safe for concurrent use.
type Checkout struct {
	ID       uuid.UUID
	strategy pricing.Strategy
	cart     *cart.Cart
	logger   zerolog.Logger
}

// Option customises a Checkout.
type Option func(*Checkout)

// WithLogger attaches a logger; the default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Checkout) {
		c.logger = logger
	}
}

// WithID overrides the generated session id.
func WithID(id uuid.UUID) Option {
	return func(c *Checkout) {
		c.ID = id
	}
}

// New starts an empty checkout priced by strategy.
func New(strategy pricing.Strategy, opts ...Option) *Checkout {
	if strategy == nil {
		panic("checkout: nil pricing strategy")
	}
	c := &Checkout{
		ID:       uuid.New(),
		strategy: strategy,
		cart:     cart.New(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("checkout_id", c.ID.String()).Logger()
	return c
}

// Scan records one unit of sku. Unknown SKUs are accepted here and
// rejected when the total is computed.
func (c *Checkout) Scan(sku string) {
	c.cart.Add(sku)
	if obs.CheckoutScansTotal != nil {
		obs.CheckoutScansTotal.Inc()
	}
	c.logger.Debug().Str("sku", sku).Int("qty", c.cart.Quantity(sku)).Msg("item scanned")
}

// Quantity returns the units scanned so far for sku.
func (c *Checkout) Quantity(sku string) int {
	return c.cart.Quantity(sku)
}

// Total returns the amount due for everything scanned so far.
func (c *Checkout) Total() (pricing.Money, error) {
	r, err := c.Receipt()
	if err != nil {
		return 0, err
	}
	return r.Total, nil
}

// Receipt prices every distinct SKU in the cart. If any SKU cannot be priced
// the whole receipt fails and the error lists every offending SKU.
func (c *Checkout) Receipt() (Receipt, error) {
	start := time.Now()
	items := c.cart.Items()
	receipt := Receipt{Lines: make([]Line, 0, len(items))}
	var errs []error
	for _, it := range items {
		amount, err := c.strategy.Price(it.SKU, it.Qty)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		receipt.Lines = append(receipt.Lines, Line{SKU: it.SKU, Qty: it.Qty, Amount: amount})
		receipt.Total += amount
	}
	err := errors.Join(errs...)
	c.observe(start, err)
	if err != nil {
		c.logger.Warn().Err(err).Int("skus", len(items)).Msg("checkout total failed")
		return Receipt{}, err
	}
	c.logger.Debug().Int("skus", len(items)).Int64("total", receipt.Total).Msg("checkout total computed")
	return receipt, nil
}

func (c *Checkout) observe(start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, pricing.ErrPriceNotFound):
		result = "price_not_found"
	case err != nil:
		result = "error"
	}
	if obs.CheckoutTotalsTotal != nil {
		obs.CheckoutTotalsTotal.WithLabelValues(result).Inc()
	}
	if obs.CheckoutTotalDuration != nil {
		obs.CheckoutTotalDuration.Observe(obs.DurationMillis(time.Since(start)))
	}
}
