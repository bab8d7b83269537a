package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gearhub",
	Short: "gearhub, the bicycle-parts storefront API",
	Long:  "gearhub serves the bicycle-parts storefront: catalog, accounts, reviews, orders, and payment intents over MongoDB.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(dbPingCmd)
	rootCmd.AddCommand(seedCmd)
}
