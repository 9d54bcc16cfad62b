package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"icondex/internal/config"
)

const version = "0.3.0"

var (
	// Global flags
	verbose     bool
	configPath  string
	datasetPath string

	// Logger
	logger *zap.Logger

	// Configuration loaded in the root PersistentPreRunE
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "icondex",
	Short: "icondex - icon metadata and embedding pipeline",
	Long: `icondex scans a directory of SVG icons, asks Gemini for structured
metadata and a text embedding per icon, accumulates the results in a JSON
dataset file, and bulk-loads that dataset into Postgres with pgvector.

Typical flow:

  icondex scan ./icons        # report complete/incomplete icon pairs
  icondex generate ./icons    # rasterize, describe, embed, append to dataset
  icondex load                # bulk-load the dataset into Postgres`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if datasetPath != "" {
			cfg.Pipeline.DatasetPath = datasetPath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the icondex version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("icondex %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset file path (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
