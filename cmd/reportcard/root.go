package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/infrastructure"
	"github.com/anaysharma/csv-xl-to-doc/internal/operations"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts"
)

var version = contracts.Version

// flags shared by the commands that render reports
var (
	configFile string
	inputDir   string
	outputDir  string
	format     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "reportcard",
	Short: "Generate student report documents from exam score sheets",
	Long: `reportcard reads class score sheets (CSV files or Excel workbooks) and
writes one report document per class: a marks table and a grouped bar
chart for every student.

Run without a subcommand it behaves like "reportcard generate".`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (default \""+config.DefaultOutputDir+"\")")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "report format: xlsx or pdf")
	rootCmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (default \""+config.DefaultInputDir+"\")")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// app is everything a command needs once configuration is loaded
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	otel    *infrastructure.OTelProviders
	manager *operations.Manager
}

// loadConfig reads configuration and applies the command line overrides.
// Flags only override values that were given.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		if err := os.Setenv(config.ConfigFileEnv, configFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if inputDir != "" {
		cfg.Paths.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.Paths.OutputDir = outputDir
	}
	if format != "" {
		cfg.Report.Format = format
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line options: %w", err)
	}
	return cfg, nil
}

// newApp loads configuration and starts logging, telemetry and the run
// manager.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	tracer, err := operations.NewRunTracer(providers)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create run tracer: %w", err)
	}

	manager, err := operations.NewManager(cfg, logger, operations.WithTracer(tracer))
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, otel: providers, manager: manager}, nil
}

// close flushes metrics and traces
func (a *app) close() {
	if err := a.otel.WriteMetrics(a.cfg.Telemetry.MetricsFile); err != nil {
		a.logger.Warn("failed to write metrics textfile", "path", a.cfg.Telemetry.MetricsFile, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.otel.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown failed", "error", err)
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		a.logger.Warn("failed to close log file", "error", err)
	}
}

// printSummary writes a short run summary to the command output
func printSummary(cmd *cobra.Command, manifest *operations.RunManifest) {
	if manifest == nil {
		return
	}
	cmd.Printf("Run %s: %d completed, %d skipped, %d failed\n",
		manifest.Status, manifest.Completed, manifest.Skipped, manifest.Failed)
	for _, path := range manifest.Outputs() {
		cmd.Printf("  %s\n", path)
	}
	cmd.Printf("Manifest: %s\n", operations.ManifestPath(manifest.OutputDir))
}
