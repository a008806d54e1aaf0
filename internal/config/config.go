package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// ErrMalformedEntry is returned for a price or discount entry that cannot be parsed.
var ErrMalformedEntry = errors.New("malformed entry")

// Config holds checkout configuration loaded from the environment.
type Config struct {
	StrategyKind     pricing.Kind
	Prices           pricing.PriceTable
	Discounts        pricing.DiscountTable
	CurrencyExponent int32
	LogFormat        string
	LogLevel         string
	MetricsNamespace string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	kind, err := pricing.ParseKind(k.String("CHECKOUT_STRATEGY"))
	if err != nil {
		return nil, err
	}
	rawPrices := strings.TrimSpace(k.String("CHECKOUT_PRICES"))
	if rawPrices == "" {
		return nil, errors.New("CHECKOUT_PRICES is required")
	}
	prices, err := ParsePrices(rawPrices)
	if err != nil {
		return nil, fmt.Errorf("CHECKOUT_PRICES: %w", err)
	}
	discounts, err := ParseDiscounts(k.String("CHECKOUT_DISCOUNTS"))
	if err != nil {
		return nil, fmt.Errorf("CHECKOUT_DISCOUNTS: %w", err)
	}
	exp, err := parseExponent(k.String("CHECKOUT_CURRENCY_EXPONENT"))
	if err != nil {
		return nil, fmt.Errorf("CHECKOUT_CURRENCY_EXPONENT: %w", err)
	}

	return &Config{
		StrategyKind:     kind,
		Prices:           prices,
		Discounts:        discounts,
		CurrencyExponent: exp,
		LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "checkout"),
	}, nil
}

// Strategy builds the configured pricing strategy.
func (c *Config) Strategy() (pricing.Strategy, error) {
	return pricing.New(c.StrategyKind, c.Prices, c.Discounts)
}

// ParsePrices parses "SKU=price" pairs separated by commas. Prices are in minor units.
func ParsePrices(value string) (pricing.PriceTable, error) {
	table := pricing.PriceTable{}
	for _, entry := range splitAndTrim(value) {
		sku, raw, err := splitEntry(entry)
		if err != nil {
			return nil, err
		}
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedEntry, entry, err)
		}
		table[sku] = price
	}
	return table, nil
}

// ParseDiscounts parses "SKU=size:price" pairs separated by commas.
func ParseDiscounts(value string) (pricing.DiscountTable, error) {
	table := pricing.DiscountTable{}
	for _, entry := range splitAndTrim(value) {
		sku, raw, err := splitEntry(entry)
		if err != nil {
			return nil, err
		}
		sizeRaw, priceRaw, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q: expected size:price", ErrMalformedEntry, entry)
		}
		size, err := strconv.Atoi(strings.TrimSpace(sizeRaw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedEntry, entry, err)
		}
		price, err := strconv.ParseInt(strings.TrimSpace(priceRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedEntry, entry, err)
		}
		table[sku] = pricing.DiscountRule{BundleSize: size, BundlePrice: price}
	}
	return table, nil
}

func splitEntry(entry string) (string, string, error) {
	sku, raw, ok := strings.Cut(entry, "=")
	sku = strings.TrimSpace(sku)
	if !ok || sku == "" {
		return "", "", fmt.Errorf("%w: %q: expected SKU=value", ErrMalformedEntry, entry)
	}
	return sku, strings.TrimSpace(raw), nil
}

func parseExponent(value string) (int32, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return int32(n), nil
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// MustLoad behaves like Load but panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
