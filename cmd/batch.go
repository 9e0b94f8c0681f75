package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enrich all pending leads in the datastore",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		processed := env.Processor.ProcessPending(ctx)
		zap.L().Info("batch complete", zap.Int("processed", processed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
