package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) pricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Print the configured price and discount tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.cfg.Strategy(); err != nil {
				return fmt.Errorf("invalid pricing configuration: %w", err)
			}
			skus := make([]string, 0, len(a.cfg.Prices))
			for sku := range a.cfg.Prices {
				skus = append(skus, sku)
			}
			slices.Sort(skus)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "SKU\tUNIT\tOFFER\n")
			for _, sku := range skus {
				offer := "-"
				if rule, ok := a.cfg.Discounts[sku]; ok {
					offer = fmt.Sprintf("%d for %s", rule.BundleSize, a.format(rule.BundlePrice))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", sku, a.format(a.cfg.Prices[sku]), offer)
			}
			fmt.Fprintf(w, "strategy: %s\n", a.cfg.StrategyKind)
			return w.Flush()
		},
	}
}
