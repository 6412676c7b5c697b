package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"promptscrape/internal/crawler"
	"promptscrape/internal/prompts"
	"promptscrape/internal/telemetry"

	"github.com/spf13/cobra"
)

var parseUrl *string
var parseOutput *string

func init() {
	parseUrl = parseCmd.Flags().String("url", "", "The url recorded for the page, defaults to the file path.")
	parseOutput = parseCmd.Flags().StringP("output", "o", "", "Also write the records as a UTF-16 TSV file.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <page.html>... [--url <url>] [-o <output.csv>]",
	Short: "Extracts prompts from saved html pages, for checking the extractor against a page.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		schema, err := newSchema(config, telemetry.SlogAPI{})
		if err != nil {
			return err
		}

		var records []prompts.Record
		for _, path := range args {
			html, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			url := *parseUrl
			if url == "" || len(args) > 1 {
				url, err = filepath.Abs(path)
				if err != nil {
					return err
				}
			}

			record, ok, err := schema.Extract(cmd.Context(), string(html), url)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: No target table.\n", path)
				continue
			}
			records = append(records, record)
		}

		crawler.RenderRecords(cmd.OutOrStdout(), records)
		if *parseOutput != "" && len(records) > 0 {
			err = crawler.FileSnapshot{Path: *parseOutput}.Snapshot(records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d records to %s\n", len(records), *parseOutput)
		}
		return nil
	},
}
