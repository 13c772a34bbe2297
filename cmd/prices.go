package cmd

import (
	"fmt"

	"fab-catalog/feature/prices"

	"github.com/spf13/cobra"
)

// pricesCmd represents the prices command
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Inspect the pricing mirror",
}

// pricesRefreshCmd runs one full refresh and prints its result.
var pricesRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch every price group once and report the outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		res := rt.prices.Refresh(cmd.Context())
		if err := printJSON(res); err != nil {
			return err
		}
		if res.Status == prices.StatusFailed {
			return fmt.Errorf("price refresh failed: %w", res.Err)
		}
		return nil
	},
}

// pricesGetCmd prints the price of one product.
var pricesGetCmd = &cobra.Command{
	Use:   "get <productId>",
	Short: "Fetch prices and print one product's price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		rt.prices.EnsureLoaded(cmd.Context())
		return printJSON(rt.prices.GetPrice(args[0]))
	},
}

func init() {
	pricesCmd.AddCommand(pricesRefreshCmd)
	pricesCmd.AddCommand(pricesGetCmd)
	RootCmd.AddCommand(pricesCmd)
}
