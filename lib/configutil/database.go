package configutil

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	devenv "promptscrape/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Database selects where scrape results are mirrored. A non-empty `Url`
// takes precedence and points to a remote libsql (turso) database,
// otherwise `File` is opened as a local sqlite database.
type Database struct {
	File      string `json:"file" env:"FILE"`
	Url       string `json:"url" env:"URL"`
	AuthToken string `json:"auth_token" env:"AUTH_TOKEN"`
}

func (config Database) Enabled() bool {
	return config.File != "" || config.Url != ""
}

func (config Database) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		return config.openRemote()
	}
	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	if config.File == ":memory:" {
		db, err := sql.Open("sqlite", config.File)
		if err != nil {
			return nil, err
		}
		// every connection would get its own empty database otherwise
		db.SetMaxOpenConns(1)
		return db, nil
	}

	dbpath, statErr := devenv.ResolvePath(config.File)
	if statErr != nil {
		return nil, statErr
	}

	_, statErr = os.Stat(dbpath)
	isNewDb := os.IsNotExist(statErr)
	if isNewDb {
		f, err := os.Create(dbpath)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (config Database) openRemote() (*sql.DB, error) {
	link, err := url.Parse(config.Url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if config.AuthToken != "" {
		query := link.Query()
		query.Set("authToken", config.AuthToken)
		link.RawQuery = query.Encode()
	}
	return sql.Open("libsql", link.String())
}
