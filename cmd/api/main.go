package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/zola-inventory-api/pkg/config"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "zola-inventory",
	Short: "Zola Pizza inventory API",
	Long:  `API de inventario, compras y facturación del restaurante Zola Pizza.`,
	// Sin subcomando se levanta el servidor.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createManagerCmd)
}

// @title           Zola Pizza Inventory API
// @version         1.0
// @description     Inventário, fornecedores, notas fiscais de compra e pedidos do restaurante Zola Pizza.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     "Bearer <token>"
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carga la configuración y construye el logger comunes a todos los subcomandos.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	return cfg, log, nil
}
