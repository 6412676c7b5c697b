package db

import (
	"context"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var Schema string

// Migrate applies Schema one statement at a time, remote libsql
// connections do not accept several statements in one call.
func Migrate(ctx context.Context, database DBTX) error {
	for _, stmt := range strings.Split(Schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		_, err := database.ExecContext(ctx, stmt)
		if err != nil {
			return err
		}
	}
	return nil
}
