package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/toko-checkout/internal/checkout"
)

func (a *app) totalCmd() *cobra.Command {
	var chars bool
	cmd := &cobra.Command{
		Use:   "total [SKU...]",
		Short: "Scan SKUs and print the itemised total",
		Long: `Scan each SKU argument in order and print the receipt.

With no arguments SKUs are read from stdin, separated by whitespace.
With --chars every character of every argument is scanned as its own SKU.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			skus, err := readSKUs(cmd, args, chars)
			if err != nil {
				return err
			}
			strategy, err := a.cfg.Strategy()
			if err != nil {
				return fmt.Errorf("build pricing strategy: %w", err)
			}
			co := checkout.New(strategy, checkout.WithLogger(a.logger))
			for _, sku := range skus {
				co.Scan(sku)
			}
			receipt, err := co.Receipt()
			if err != nil {
				return err
			}
			a.logger.Info().
				Str("checkout_id", co.ID.String()).
				Str("strategy", string(a.cfg.StrategyKind)).
				Int("units", len(skus)).
				Int64("total", receipt.Total).
				Msg("checkout_total")

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, line := range receipt.Lines {
				fmt.Fprintf(w, "%s\tx%d\t%s\n", line.SKU, line.Qty, a.format(line.Amount))
			}
			fmt.Fprintf(w, "TOTAL\t\t%s\n", a.format(receipt.Total))
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&chars, "chars", false, "treat each character of an argument as a SKU")
	return cmd
}

func readSKUs(cmd *cobra.Command, args []string, chars bool) ([]string, error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			args = append(args, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}
	if !chars {
		return args, nil
	}
	var skus []string
	for _, arg := range args {
		skus = append(skus, strings.Split(arg, "")...)
	}
	return skus, nil
}
