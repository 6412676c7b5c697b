package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	devenv "promptscrape/dev/env"
	"promptscrape/internal/db"
	"promptscrape/lib/configutil"
)

const resultsDb = "<dev_state>/promptscrape.db"

func CreateResultsDB() error {
	path, err := devenv.ResolvePath(resultsDb)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	database, err := configutil.Database{File: resultsDb}.OpenDB()
	if err != nil {
		return err
	}
	defer database.Close()
	return db.Migrate(context.Background(), database)
}

const localConfig = `{
  // local overrides of promptscrape.json5, not meant to be committed
  fetcher: "http",
  end_id: 110,
  output: "dev/.state/nanyo_prompts.csv",
  database: { file: "` + resultsDb + `" },
}
`

func CreateLocalConfig() error {
	_, err := os.Stat("promptscrape.local.json5")
	if err == nil {
		fmt.Println("promptscrape.local.json5 already exists")
		return nil
	}
	fmt.Println("writing promptscrape.local.json5")
	return os.WriteFile("promptscrape.local.json5", []byte(localConfig), 0644)
}

func PrintConfigLocations() {
	slog.Info("a short crawl over http is configured in promptscrape.local.json5, set PROMPTSCRAPE_BROWSER_TEST=1 to run the browser fetcher tests against a local chromium.")
}
