package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version|redo|reset]",
	Short:     "Aplica las migraciones SQL embebidas",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down", "status", "version", "redo", "reset"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	command := "up"
	if len(args) == 1 {
		command = args[0]
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log.Info().Str("command", command).Msg("ejecutando migraciones")
	if err := migrations.Run(ctx, cfg.DB.ConnectionString(), command); err != nil {
		return err
	}
	log.Info().Str("command", command).Msg("migraciones terminadas")
	return nil
}

func runMigrations(ctx context.Context, dsn string) error {
	return migrations.Up(ctx, dsn)
}
