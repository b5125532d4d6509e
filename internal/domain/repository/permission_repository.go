package repository

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// PermissionRepository persistencia de las concesiones explícitas (user, permission).
type PermissionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.PermissionGrant, error)
	// Grant inserta la concesión; si ya existe no hace nada.
	Grant(ctx context.Context, grant entity.PermissionGrant) error
	// Revoke elimina la concesión; devuelve false si no existía.
	Revoke(ctx context.Context, userID string, p entity.Permission) (bool, error)
}
