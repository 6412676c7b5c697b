package testutil

import (
	"database/sql"
	"fmt"
	"promptscrape/lib/configutil"
	"promptscrape/lib/telemetry"
	"testing"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService sets up telemetry once per service name and opens a
// sqlite database that is closed when the test ends.
func SetupService(t testing.TB, params ServiceParams) ServiceResult {
	cleanup := telemetry.SetupForTesting(fmt.Sprintf("test:%s", params.Name))
	t.Cleanup(cleanup)

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	database, err := configutil.Database{File: dbpath}.OpenDB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	return ServiceResult{
		DB: database,
	}
}
