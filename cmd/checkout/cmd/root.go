// Package cmd provides the commands of the checkout CLI.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/noah-isme/toko-checkout/internal/config"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

type app struct {
	cfg          *config.Config
	logger       zerolog.Logger
	strategyFlag string
	verbose      bool
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "checkout",
		Short: "Price scanned items with flat or bulk-discount pricing",
		Long: `checkout totals a basket of scanned SKUs.

Prices and discounts come from the environment:
  CHECKOUT_PRICES="A=50,B=30,C=20,D=15"
  CHECKOUT_DISCOUNTS="A=3:130,B=2:45"
  CHECKOUT_STRATEGY=bulk

Examples:
  checkout total A B A
  checkout total --chars DABABA
  echo "A A B" | checkout total`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.strategyFlag, "strategy", "", "pricing strategy: flat or bulk (overrides CHECKOUT_STRATEGY)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.totalCmd())
	root.AddCommand(a.pricesCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.strategyFlag != "" {
		kind, err := pricing.ParseKind(a.strategyFlag)
		if err != nil {
			return err
		}
		cfg.StrategyKind = kind
	}
	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.logger = obs.NewLoggerTo(cmd.ErrOrStderr(), cfg.LogFormat, level)
	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	return nil
}

func (a *app) format(amount pricing.Money) string {
	exp := a.cfg.CurrencyExponent
	return decimal.New(amount, -exp).StringFixed(exp)
}
