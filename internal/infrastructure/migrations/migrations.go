// Package migrations aplica el esquema SQL embebido con goose.
package migrations

import (
	"context"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const tableName = "schema_migrations"

// Run ejecuta el comando goose indicado ("up", "down", "status", "version"...) contra dsn.
func Run(ctx context.Context, dsn, command string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose: abrir DB: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(files)
	goose.SetTableName(tableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: dialecto: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, "sql"); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up aplica todas las migraciones pendientes.
func Up(ctx context.Context, dsn string) error {
	return Run(ctx, dsn, "up")
}
