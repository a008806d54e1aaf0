// Package main is the entry point for the checkout CLI.
package main

import (
	"os"

	"github.com/noah-isme/toko-checkout/cmd/checkout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
