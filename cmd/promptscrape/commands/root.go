package commands

import (
	"context"
	"fmt"
	"os"
	"promptscrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var configPath *string
var logLevel *string

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "promptscrape.json5", "The config file to read, a <name>.local.json5 next to it overrides it.")
	logLevel = rootCmd.PersistentFlags().String("log", "", "The log level (debug, info, warn, error), overrides the config.")
}

var rootCmd = &cobra.Command{
	Use:           "promptscrape",
	Short:         "promptscrape collects prompt templates from numbered pages into a spreadsheet.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initLogging(level string) error {
	parsed, err := telemetry.ParseLevel(level)
	if err != nil {
		return err
	}
	telemetry.InitSlog(parsed)
	return nil
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
