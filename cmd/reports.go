package cmd

import (
	"recon-engine/core/report"
	"recon-engine/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportsCmd lists published reports.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports published to the storage bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		keys, err := storage.List(cmd.Context(), env.client, env.cfg.Storage.Bucket, report.PublishPrefix)
		if err != nil {
			return err
		}
		for _, key := range keys {
			env.logger.Info("Report", zap.String("key", key))
		}
		env.logger.Info("Published reports", zap.String("bucket", env.cfg.Storage.Bucket), zap.Int("count", len(keys)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportsCmd)
}
