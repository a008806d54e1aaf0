package checkout_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

var (
	skuPrices = pricing.PriceTable{"A": 50, "B": 30, "C": 20, "D": 15}
	discounts = pricing.DiscountTable{
		"A": {BundleSize: 3, BundlePrice: 130},
		"B": {BundleSize: 2, BundlePrice: 45},
	}
)

func flatStrategy(t *testing.T) pricing.Strategy {
	t.Helper()
	s, err := pricing.NewFlatStrategy(skuPrices)
	require.NoError(t, err)
	return s
}

func bulkStrategy(t *testing.T) pricing.Strategy {
	t.Helper()
	s, err := pricing.NewBulkStrategy(skuPrices, discounts)
	require.NoError(t, err)
	return s
}

func scanAll(c *checkout.Checkout, input string) {
	for _, sku := range strings.Split(input, "") {
		c.Scan(sku)
	}
}

func TestEmptyCheckoutTotalsZero(t *testing.T) {
	for _, s := range []pricing.Strategy{flatStrategy(t), bulkStrategy(t)} {
		total, err := checkout.New(s).Total()
		require.NoError(t, err)
		require.Zero(t, total)
	}
}

func TestFlatTotals(t *testing.T) {
	cases := []struct {
		input string
		want  pricing.Money
	}{
		{"A", 50},
		{"B", 30},
		{"C", 20},
		{"D", 15},
		{"AB", 80},
		{"CDBA", 115},
		{"AAA", 150},
	}
	for _, tc := range cases {
		c := checkout.New(flatStrategy(t))
		scanAll(c, tc.input)
		total, err := c.Total()
		require.NoError(t, err)
		require.Equal(t, tc.want, total, tc.input)
	}
}

func TestBulkTotals(t *testing.T) {
	cases := []struct {
		input string
		want  pricing.Money
	}{
		{"AA", 100},
		{"AAA", 130},
		{"AAAA", 180},
		{"AAAAA", 230},
		{"AAAAAA", 260},
		{"AAAB", 160},
		{"AAABB", 175},
		{"AAABBD", 190},
		{"DABABA", 190},
	}
	for _, tc := range cases {
		c := checkout.New(bulkStrategy(t))
		scanAll(c, tc.input)
		total, err := c.Total()
		require.NoError(t, err)
		require.Equal(t, tc.want, total, tc.input)
	}
}

func TestTotalIsIdempotentAndScanContinues(t *testing.T) {
	c := checkout.New(bulkStrategy(t))
	scanAll(c, "AA")

	first, err := c.Total()
	require.NoError(t, err)
	second, err := c.Total()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 2, c.Quantity("A"))

	c.Scan("A")
	third, err := c.Total()
	require.NoError(t, err)
	require.Equal(t, pricing.Money(130), third)
}

func TestStrategySubstitutionForUndiscountedItems(t *testing.T) {
	flat := checkout.New(flatStrategy(t))
	bulk := checkout.New(bulkStrategy(t))
	for _, c := range []*checkout.Checkout{flat, bulk} {
		scanAll(c, "CDCDDC")
	}
	a, err := flat.Total()
	require.NoError(t, err)
	b, err := bulk.Total()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestReceiptLines(t *testing.T) {
	c := checkout.New(bulkStrategy(t))
	scanAll(c, "DABABA")

	receipt, err := c.Receipt()
	require.NoError(t, err)
	require.Equal(t, []checkout.Line{
		{SKU: "A", Qty: 3, Amount: 130},
		{SKU: "B", Qty: 2, Amount: 45},
		{SKU: "D", Qty: 1, Amount: 15},
	}, receipt.Lines)
	require.Equal(t, pricing.Money(190), receipt.Total)
}

func TestUnknownItemFailsTotal(t *testing.T) {
	c := checkout.New(bulkStrategy(t))
	scanAll(c, "AZXA")
	require.Equal(t, 1, c.Quantity("Z"))

	total, err := c.Total()
	require.Zero(t, total)
	require.ErrorIs(t, err, pricing.ErrPriceNotFound)
	require.Contains(t, err.Error(), `"X"`)
	require.Contains(t, err.Error(), `"Z"`)

	var notFound *pricing.PriceNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "X", notFound.SKU)

	_, err = c.Receipt()
	require.ErrorIs(t, err, pricing.ErrPriceNotFound)
}

func TestSKUsAreCaseSensitive(t *testing.T) {
	c := checkout.New(flatStrategy(t))
	c.Scan("a")
	_, err := c.Total()
	require.ErrorIs(t, err, pricing.ErrPriceNotFound)
}

func TestNilStrategyPanics(t *testing.T) {
	require.Panics(t, func() {
		checkout.New(nil)
	})
}

func TestLoggerCarriesCheckoutID(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	c := checkout.New(flatStrategy(t),
		checkout.WithID(id),
		checkout.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
	)
	require.Equal(t, id, c.ID)

	c.Scan("A")
	_, err := c.Total()
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"checkout_id":"11111111-1111-1111-1111-111111111111"`)
	require.Contains(t, buf.String(), "item scanned")
	require.Contains(t, buf.String(), "checkout total computed")
}

func TestCheckoutMetrics(t *testing.T) {
	obs.MustRegisterDomainMetrics("test", prometheus.NewRegistry())

	scans := testutil.ToFloat64(obs.CheckoutScansTotal)
	ok := testutil.ToFloat64(obs.CheckoutTotalsTotal.WithLabelValues("ok"))
	missing := testutil.ToFloat64(obs.CheckoutTotalsTotal.WithLabelValues("price_not_found"))

	c := checkout.New(flatStrategy(t))
	scanAll(c, "AB")
	_, err := c.Total()
	require.NoError(t, err)
	c.Scan("Q")
	_, err = c.Total()
	require.Error(t, err)

	require.Equal(t, scans+3, testutil.ToFloat64(obs.CheckoutScansTotal))
	require.Equal(t, ok+1, testutil.ToFloat64(obs.CheckoutTotalsTotal.WithLabelValues("ok")))
	require.Equal(t, missing+1, testutil.ToFloat64(obs.CheckoutTotalsTotal.WithLabelValues("price_not_found")))
}
