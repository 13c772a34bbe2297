package cmd

import (
	"fmt"

	"fab-catalog/feature/cards"
	"fab-catalog/feature/health/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// datasetCmd represents the dataset command
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage the card dataset in object storage",
}

// datasetPushCmd uploads a local dataset directory to the storage bucket.
var datasetPushCmd = &cobra.Command{
	Use:   "push <dir>",
	Short: "Validate and upload cards.json, sets.json and keywords.json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		cfg := rt.cfg
		uploads, err := cards.Publish(cmd.Context(), rt.store, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Cards.Prefix, args[0])
		if err != nil {
			return err
		}
		for _, u := range uploads {
			rt.logger.Info("Uploaded dataset document", zap.String("key", u.Key), zap.Int64("size", u.Size))
		}
		return nil
	},
}

// datasetCheckCmd reports dataset documents missing from the bucket.
var datasetCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report dataset documents missing from the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		missing, err := checks.CheckDataset(cmd.Context(), rt.store, rt.cfg.Storage.Bucket, rt.cfg.Cards.Prefix, cards.Documents)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("dataset incomplete, missing: %v", missing)
		}
		rt.logger.Info("Dataset complete", zap.String("bucket", rt.cfg.Storage.Bucket), zap.String("prefix", rt.cfg.Cards.Prefix))
		return nil
	},
}

func init() {
	datasetCmd.AddCommand(datasetPushCmd)
	datasetCmd.AddCommand(datasetCheckCmd)
	RootCmd.AddCommand(datasetCmd)
}
