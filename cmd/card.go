package cmd

import (
	"fmt"

	"fab-catalog/feature/catalog"

	"github.com/spf13/cobra"
)

// cardCmd represents the card command
var cardCmd = &cobra.Command{
	Use:   "card <identifier>",
	Short: "Look up a card with prices",
	Long: `Loads the card dataset, resolves the identifier as a printing id (e.g. WTR001),
a card unique id or a card name, and prints the card with current prices as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if err := rt.index.Load(ctx); err != nil {
			return fmt.Errorf("failed to load card index: %w", err)
		}

		svc := catalog.NewService(rt.index, rt.prices, rt.logger)
		view, ok, err := svc.GetCard(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("card %q not found", args[0])
		}
		return printJSON(view)
	},
}

func init() {
	RootCmd.AddCommand(cardCmd)
}
