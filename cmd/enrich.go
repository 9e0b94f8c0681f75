package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	enrichCompany string
	enrichPerson  string
	enrichLeadID  int64
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a single lead and print the record",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		rec := env.Processor.EnrichLead(ctx, enrichCompany, enrichPerson)

		if enrichLeadID > 0 {
			env.Processor.UpdateLead(ctx, enrichLeadID, rec)
		}

		zap.L().Info("enrichment complete",
			zap.String("company", enrichCompany),
			zap.String("person", enrichPerson),
			zap.Bool("degraded", rec.Failed()),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichCompany, "company", "", "company name (required)")
	enrichCmd.Flags().StringVar(&enrichPerson, "person", "", "person full name (required)")
	enrichCmd.Flags().Int64Var(&enrichLeadID, "lead-id", 0, "lead row to persist the record against")
	_ = enrichCmd.MarkFlagRequired("company")
	_ = enrichCmd.MarkFlagRequired("person")
	rootCmd.AddCommand(enrichCmd)
}
