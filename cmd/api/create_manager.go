package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/postgres"
)

var (
	managerEmail    string
	managerPassword string
	managerName     string
)

// createManagerCmd crea el primer manager o promueve una cuenta existente.
var createManagerCmd = &cobra.Command{
	Use:   "create-manager",
	Short: "Crea o promueve una cuenta a manager activo",
	RunE:  runCreateManager,
}

func init() {
	createManagerCmd.Flags().StringVar(&managerEmail, "email", "", "email del manager")
	createManagerCmd.Flags().StringVar(&managerPassword, "password", "", "password (mínimo 8 caracteres; solo para cuentas nuevas)")
	createManagerCmd.Flags().StringVar(&managerName, "name", "Gerente", "nombre completo")
	_ = createManagerCmd.MarkFlagRequired("email")
}

func runCreateManager(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	email := strings.ToLower(strings.TrimSpace(managerEmail))
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	now := time.Now()
	if existing != nil {
		existing.Role = entity.RoleManager
		existing.Status = entity.UserStatusActive
		existing.UpdatedAt = now
		if err := users.Update(ctx, existing); err != nil {
			return err
		}
		log.Info().Str("user_id", existing.ID).Str("email", email).Msg("cuenta promovida a manager")
		return nil
	}

	if len(managerPassword) < 8 {
		return errors.New("--password es obligatorio para cuentas nuevas (mínimo 8 caracteres)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(managerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     managerName,
		Role:         entity.RoleManager,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	log.Info().Str("user_id", user.ID).Str("email", email).Msg("manager creado")
	return nil
}
