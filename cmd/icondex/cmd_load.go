package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"icondex/internal/loader"
	"icondex/internal/pipeline"
)

// loadCmd bulk-loads the dataset file into Postgres.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the dataset into the Postgres vector store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateLoad(); err != nil {
			return err
		}

		target, err := loader.NewPostgresTarget(cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer target.Close()

		logger.Info("Load configured",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
			zap.Int("batch_size", cfg.Pipeline.BatchSize))

		ldr := loader.NewLoader(
			target,
			cfg.Pipeline.BatchSize,
			pipeline.NewFixedInterval(cfg.Pipeline.BatchDelayDuration()),
			logger)

		res, err := ldr.Run(cmd.Context(), cfg.Pipeline.DatasetPath)
		if err != nil {
			return err
		}

		fmt.Printf("Loaded %d of %d records\n", res.Inserted, len(res.Outcomes))
		if !res.OK {
			return fmt.Errorf("%d records failed to load", len(res.Outcomes)-res.Inserted)
		}
		return nil
	},
}
