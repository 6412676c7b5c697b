package commands

import (
	"fmt"
	"log/slog"
	"promptscrape/internal/crawler"
	"promptscrape/internal/prompts"
	"promptscrape/internal/telemetry"
	"promptscrape/lib/configutil"
	"time"

	"github.com/spf13/cobra"
)

const envPrefix = "PROMPTSCRAPE_"

type BrowserConfig struct {
	// path to a chromium binary, rod downloads one when empty
	Bin         string `json:"bin" env:"BIN"`
	Headful     bool   `json:"headful" env:"HEADFUL"`
	IdleSeconds int    `json:"idle_seconds" env:"IDLE_SECONDS"`
}

type Config struct {
	// must contain {id}
	BaseUrl         string `json:"base_url" env:"BASE_URL"`
	IDWidth         int    `json:"id_width" env:"ID_WIDTH"`
	StartID         int    `json:"start_id" env:"START_ID"`
	EndID           int    `json:"end_id" env:"END_ID"`
	Output          string `json:"output" env:"OUTPUT"`
	CheckpointEvery int    `json:"checkpoint_every" env:"CHECKPOINT_EVERY"`
	TimeoutSeconds  int    `json:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	// "browser" or "http"
	Fetcher          string        `json:"fetcher" env:"FETCHER"`
	Browser          BrowserConfig `json:"browser" envPrefix:"BROWSER_"`
	CloudflareBypass bool          `json:"cloudflare_bypass" env:"CLOUDFLARE_BYPASS"`
	// request/response dumps of the http fetcher while debug logging
	DumpDir  string `json:"dump_dir" env:"DUMP_DIR"`
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`
	// extra heading label -> column (field key or label)
	Aliases  map[string]string   `json:"aliases"`
	Database configutil.Database `json:"database" envPrefix:"DATABASE_"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:         "https://nanyo-city.jpn.org/prompt/{id}.html",
		StartID:         100,
		EndID:           700,
		Output:          "nanyo_prompts.csv",
		CheckpointEvery: crawler.DefaultCheckpointEvery,
		TimeoutSeconds:  30,
		Fetcher:         "browser",
		Browser: BrowserConfig{
			IdleSeconds: 1,
		},
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) Validate() error {
	if c.StartID > c.EndID {
		return fmt.Errorf("start id %d is after end id %d", c.StartID, c.EndID)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	switch c.Fetcher {
	case "browser", "http":
	default:
		return fmt.Errorf("unknown fetcher %q, expected browser or http", c.Fetcher)
	}
	return nil
}

// loadConfig reads the config file and environment, then sets up logging
// with the resulting level unless --log overrides it.
func loadConfig(cmd *cobra.Command) (Config, error) {
	config, err := configutil.Load(*configPath, envPrefix, defaultConfig())
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", *configPath, err)
	}
	if cmd.Flags().Changed("log") {
		config.LogLevel = *logLevel
	}
	err = initLogging(config.LogLevel)
	if err != nil {
		return config, err
	}
	slog.Debug("loaded config", "path", *configPath, "fetcher", config.Fetcher, "db", config.Database.Enabled())
	return config, nil
}

func newSchema(config Config, tel telemetry.API) (*prompts.Schema, error) {
	schema := prompts.NewSchema(tel)
	err := schema.AddAliases(config.Aliases)
	if err != nil {
		return nil, fmt.Errorf("aliases: %w", err)
	}
	return schema, nil
}
