package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ajitpratap0/sheetsync/internal/pipeline"
	"github.com/ajitpratap0/sheetsync/pkg/config"
	"github.com/ajitpratap0/sheetsync/pkg/grid/sheets"
	"github.com/ajitpratap0/sheetsync/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "sheetsync",
		Short: "sheetsync - spreadsheet synchronization and findings upload",
		Long: `sheetsync keeps tabular data in two independently maintained Google Sheets
in sync and ingests TruffleHog ND-JSON findings into a worksheet.

The sync command builds a key→status mapping from a source worksheet, ensures
the target column exists in the destination, merges by the shared key column
and pushes the merged column back in bounded-size chunks. The upload command
flattens ND-JSON findings and appends them in bounded-size chunks.`,
	}

	var configFile, logLevel string
	var timeout time.Duration

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "sheetsync.yaml", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Minute, "Run timeout")

	// Environment variables with the SHEETSYNC_ prefix override flags,
	// e.g. SHEETSYNC_CONFIG, SHEETSYNC_CREDENTIALS.
	viper.SetEnvPrefix("SHEETSYNC")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sheetsync v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Sync statuses from the source worksheet into the destination worksheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateSync(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runSync(ctx, cfg)
		},
	})

	var inputFile string
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload ND-JSON findings to a worksheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if inputFile != "" {
				cfg.Upload.InputFile = inputFile
			}
			if err := cfg.ValidateUpload(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runUpload(ctx, cfg)
		},
	}
	uploadCmd.Flags().StringVarP(&inputFile, "input", "i", "", "ND-JSON findings file (overrides config)")
	root.AddCommand(uploadCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup initializes logging, loads the configuration file and verifies the
// service-account key exists before anything touches the remote grids.
func setup() (*config.Config, error) {
	if err := logger.Init(logger.Config{
		Level:    viper.GetString("log_level"),
		Encoding: "console",
	}); err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	if err := config.Load(viper.GetString("config"), cfg); err != nil {
		return nil, err
	}
	if creds := viper.GetString("credentials"); creds != "" {
		cfg.CredentialsFile = creds
	}
	cfg.ApplyDefaults()

	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, fmt.Errorf("service account key %q not found", cfg.CredentialsFile)
		}
	}
	return cfg, nil
}

func runSync(ctx context.Context, cfg *config.Config) error {
	defer func() { _ = logger.Sync() }()

	source, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:     cfg.Sync.Source.SpreadsheetID,
		Worksheet:         cfg.Sync.Source.Worksheet,
		CredentialsFile:   cfg.CredentialsFile,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		return err
	}
	dest, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:     cfg.Sync.Destination.SpreadsheetID,
		Worksheet:         cfg.Sync.Destination.Worksheet,
		CredentialsFile:   cfg.CredentialsFile,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		return err
	}

	res, err := pipeline.Sync(ctx, source, dest, cfg.Sync)
	if err != nil {
		return err
	}

	logger.Info("sync complete",
		zap.Int("pairs", res.Pairs),
		zap.Int("rows_loaded", res.RowsLoaded),
		zap.Int("matches", res.Matches),
		zap.Int("chunks", res.Chunks))
	return nil
}

func runUpload(ctx context.Context, cfg *config.Config) error {
	defer func() { _ = logger.Sync() }()

	input, err := os.Open(cfg.Upload.InputFile)
	if err != nil {
		return fmt.Errorf("findings file %q not found", cfg.Upload.InputFile)
	}
	defer func() { _ = input.Close() }()

	store, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:     cfg.Upload.SpreadsheetID,
		Worksheet:         cfg.Upload.Worksheet,
		CredentialsFile:   cfg.CredentialsFile,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	if err != nil {
		return err
	}

	res, err := pipeline.Upload(ctx, store, input, cfg.Upload.ChunkSize)
	if err != nil {
		return err
	}

	logger.Info("upload complete",
		zap.Int("rows", res.Rows),
		zap.Int("skipped", res.Skipped),
		zap.Int("chunks", res.Chunks))
	return nil
}
