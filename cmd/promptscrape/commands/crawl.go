package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"promptscrape/internal/chrono"
	"promptscrape/internal/crawler"
	"promptscrape/internal/fetch"
	"promptscrape/internal/store"
	"promptscrape/internal/telemetry"
	"promptscrape/lib/restyutil"
	libtelemetry "promptscrape/lib/telemetry"
	"time"

	"github.com/spf13/cobra"
)

var crawlFlags struct {
	baseUrl  *string
	start    *int
	end      *int
	output   *string
	every    *int
	fetcher  *string
	headful  *bool
	database *string
}

func init() {
	flags := crawlCmd.Flags()
	crawlFlags.baseUrl = flags.String("base-url", "", "The page url template, {id} is replaced by the page id.")
	crawlFlags.start = flags.Int("start", 0, "The first page id to check.")
	crawlFlags.end = flags.Int("end", 0, "The last page id to check (inclusive).")
	crawlFlags.output = flags.StringP("output", "o", "", "The UTF-16 TSV file to write.")
	crawlFlags.every = flags.Int("every", 0, "Write a checkpoint every N records.")
	crawlFlags.fetcher = flags.String("fetcher", "", "How pages are loaded: browser or http.")
	crawlFlags.headful = flags.Bool("headful", false, "Show the browser window.")
	crawlFlags.database = flags.String("db", "", "Also mirror records into this sqlite database.")
	rootCmd.AddCommand(crawlCmd)
}

func applyCrawlFlags(cmd *cobra.Command, config *Config) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		config.BaseUrl = *crawlFlags.baseUrl
	}
	if flags.Changed("start") {
		config.StartID = *crawlFlags.start
	}
	if flags.Changed("end") {
		config.EndID = *crawlFlags.end
	}
	if flags.Changed("output") {
		config.Output = *crawlFlags.output
	}
	if flags.Changed("every") {
		config.CheckpointEvery = *crawlFlags.every
	}
	if flags.Changed("fetcher") {
		config.Fetcher = *crawlFlags.fetcher
	}
	if flags.Changed("headful") {
		config.Browser.Headful = *crawlFlags.headful
	}
	if flags.Changed("db") {
		config.Database.File = *crawlFlags.database
		config.Database.Url = ""
	}
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--start <id>] [--end <id>] [-o <output.csv>]",
	Short: "Checks every page in the id range and writes the prompts found to a TSV file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyCrawlFlags(cmd, &config)
		err = config.Validate()
		if err != nil {
			return err
		}
		return crawl(cmd.Context(), cmd, config)
	},
}

func newFetcher(ctx context.Context, config Config) (fetch.Fetcher, func(), error) {
	if config.Fetcher == "http" {
		var output restyutil.InstrumentOutput
		if config.DumpDir != "" {
			fsOutput, err := restyutil.NewFilesystemOutput(config.DumpDir)
			if err != nil {
				return nil, nil, fmt.Errorf("prepare dump dir: %w", err)
			}
			output = fsOutput
		}
		fetcher := fetch.NewHTTPFetcher(fetch.HTTPOptions{
			Timeout:          config.Timeout(),
			CloudflareBypass: config.CloudflareBypass,
			InstrumentOutput: output,
		})
		return fetcher, func() {}, nil
	}

	slog.Info("launching browser...", "headful", config.Browser.Headful)
	browser, err := fetch.LaunchBrowser(ctx, fetch.BrowserOptions{
		Bin:      config.Browser.Bin,
		Headful:  config.Browser.Headful,
		Timeout:  config.Timeout(),
		IdleTime: time.Duration(config.Browser.IdleSeconds) * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}
	return browser, func() {
		err := browser.Close()
		if err != nil {
			slog.Warn("failed to close browser", "err", err)
		}
	}, nil
}

func crawl(ctx context.Context, cmd *cobra.Command, config Config) error {
	tel := telemetry.SlogAPI{}
	clock := chrono.NewStandardTime()
	libtelemetry.InstrumentPerfStats(ctx, 15*time.Second)

	schema, err := newSchema(config, tel)
	if err != nil {
		return err
	}

	// the browser outlives an interrupt so the final snapshot can be written
	fetcher, closeFetcher, err := newFetcher(context.WithoutCancel(ctx), config)
	if err != nil {
		return err
	}
	defer closeFetcher()

	opts := crawler.Options{
		UrlTemplate:     config.BaseUrl,
		IDWidth:         config.IDWidth,
		StartID:         config.StartID,
		EndID:           config.EndID,
		CheckpointEvery: config.CheckpointEvery,
		Fetcher:         fetcher,
		Extractor:       schema,
		Snapshot:        crawler.FileSnapshot{Path: config.Output},
		Progress:        cmd.OutOrStdout(),
		Telemetry:       tel,
		Time:            clock,
	}

	if config.Database.Enabled() {
		database, err := config.Database.OpenDB()
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()
		results, err := store.Open(ctx, database, clock)
		if err != nil {
			return err
		}
		opts.Store = results
	}

	c, err := crawler.New(opts)
	if err != nil {
		return err
	}

	slog.Info("crawling", "from", config.StartID, "to", config.EndID, "output", config.Output)
	stats, err := c.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stats.Records > 0 {
		fmt.Fprintf(out, "\nDone! Saved %d records to %s\n", stats.Records, config.Output)
	}
	crawler.RenderStats(out, stats, config.Output)
	if stats.Interrupted {
		fmt.Fprintln(os.Stderr, "crawl was interrupted, the output only covers the pages checked")
	}
	return nil
}
