package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"icondex/internal/dataset"
	"icondex/internal/gen"
	"icondex/internal/pipeline"
	"icondex/internal/raster"
	"icondex/internal/scan"
)

// generateCmd runs the full metadata pipeline over an icon directory.
var generateCmd = &cobra.Command{
	Use:   "generate <icon-dir>",
	Short: "Generate metadata and embeddings for every unprocessed icon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateGenerate(); err != nil {
			return err
		}

		engine, err := gen.NewGenAIEngine(gen.Config{
			APIKey:         cfg.GenAI.APIKey,
			Model:          cfg.GenAI.Model,
			EmbeddingModel: cfg.GenAI.EmbeddingModel,
			TaskType:       cfg.GenAI.TaskType,
		})
		if err != nil {
			return err
		}
		defer engine.Close()

		logger.Info("Pipeline configured",
			zap.String("engine", engine.Name()),
			zap.String("library", cfg.Library),
			zap.String("dataset", cfg.Pipeline.DatasetPath))

		pairs, err := scan.NewScanner(logger).Scan(args[0])
		if err != nil {
			return err
		}

		store := dataset.NewStore(cfg.Pipeline.DatasetPath)
		generator := gen.NewGenerator(engine, engine, store, cfg.Library, cfg.Pipeline.PreviewSize, logger)
		runner := pipeline.NewRunner(
			raster.ConvertFile,
			generator,
			pipeline.NewFixedInterval(cfg.Pipeline.IconDelayDuration()),
			cfg.Library,
			cfg.Pipeline.RasterSize,
			logger)

		res, err := runner.Run(cmd.Context(), pairs)
		if err != nil {
			return err
		}
		fmt.Printf("Done: %d processed, %d skipped, %d failed\n", res.Processed, res.Skipped, res.Failed)
		return nil
	},
}
