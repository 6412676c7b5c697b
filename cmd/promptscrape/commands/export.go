package commands

import (
	"errors"
	"fmt"
	"promptscrape/internal/chrono"
	"promptscrape/internal/crawler"
	"promptscrape/internal/store"

	"github.com/spf13/cobra"
)

var exportRun *string
var exportOutput *string
var exportDb *string

func init() {
	exportRun = exportCmd.Flags().String("run", "", "The run to export, defaults to the latest run.")
	exportOutput = exportCmd.Flags().StringP("output", "o", "", "The UTF-16 TSV file to write, defaults to the configured output.")
	exportDb = exportCmd.Flags().String("db", "", "The sqlite database to read, defaults to the configured database.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--run <id>] [-o <output.csv>]",
	Short: "Rewrites a TSV file from a run stored in the result database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if *exportDb != "" {
			config.Database.File = *exportDb
			config.Database.Url = ""
		}
		if *exportOutput != "" {
			config.Output = *exportOutput
		}
		if !config.Database.Enabled() {
			return errors.New("no database configured, set database.file in the config or pass --db")
		}

		database, err := config.Database.OpenDB()
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()

		ctx := cmd.Context()
		results, err := store.Open(ctx, database, chrono.NewStandardTime())
		if err != nil {
			return err
		}

		var run store.Run
		if *exportRun != "" {
			run, err = results.Run(ctx, *exportRun)
		} else {
			run, err = results.LatestRun(ctx)
		}
		if err != nil {
			return err
		}

		records, err := results.Records(ctx, run.ID)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s has no records.\n", run.ID)
			return nil
		}

		err = crawler.FileSnapshot{Path: config.Output}.Snapshot(records)
		if err != nil {
			return err
		}
		fmt.Fprintf(
			cmd.OutOrStdout(),
			"Saved %d records of run %s (%s) to %s\n",
			len(records), run.ID, run.StartedAt.Format("2006-01-02 15:04"), config.Output,
		)
		return nil
	},
}
