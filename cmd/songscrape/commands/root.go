package commands

import (
	"carddraw-backend/internal/components/telemetry"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	dumpHttp   string
)

// set up by the root command before any subcommand runs
var (
	cfg    Config
	tel    telemetry.API
	output telemetry.InstrumentOutput
	otel   telemetry.Telemetry
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "The config file to use, defaults to the closest songscrape.json5.")
	rootCmd.PersistentFlags().StringVar(&dumpHttp, "dump-http", "", "A directory to dump every http request and response into.")
}

var rootCmd = &cobra.Command{
	Use:   "songscrape",
	Short: "songscrape is a CLI for scraping DDR song and chart data.",

	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		otel, err = telemetry.Setup(cmd.Context(), "songscrape", cfg.Otlp)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		metered, err := telemetry.NewMeteredAPI(telemetry.SlogAPI{})
		if err != nil {
			return fmt.Errorf("setup metrics: %w", err)
		}
		tel = metered

		if dumpHttp != "" {
			fsOutput, err := telemetry.NewFilesystemOutput(dumpHttp)
			if err != nil {
				return fmt.Errorf("create http dump directory: %w", err)
			}
			output = fsOutput
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		err := otel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
