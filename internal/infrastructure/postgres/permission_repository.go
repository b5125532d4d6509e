package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo concesiones explícitas en user_permissions.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// ListByUser devuelve las concesiones de un usuario ordenadas por permiso.
func (r *PermissionRepo) ListByUser(ctx context.Context, userID string) ([]entity.PermissionGrant, error) {
	rows, err := r.q.Query(ctx, `
		SELECT user_id, permission, granted_by, granted_at
		FROM user_permissions WHERE user_id = $1 ORDER BY permission`, userID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var out []entity.PermissionGrant
	for rows.Next() {
		var (
			g         entity.PermissionGrant
			perm      string
			grantedBy *string
		)
		if err := rows.Scan(&g.UserID, &perm, &grantedBy, &g.GrantedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		g.Permission = entity.Permission(perm)
		g.GrantedBy = deref(grantedBy)
		out = append(out, g)
	}
	return out, rows.Err()
}

// Grant inserta la concesión; si ya existe no hace nada.
func (r *PermissionRepo) Grant(ctx context.Context, g entity.PermissionGrant) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_permissions (user_id, permission, granted_by, granted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, permission) DO NOTHING`,
		g.UserID, string(g.Permission), nullIfEmpty(g.GrantedBy), g.GrantedAt,
	)
	if err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}

// Revoke elimina la concesión; devuelve false si no existía.
func (r *PermissionRepo) Revoke(ctx context.Context, userID string, p entity.Permission) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1 AND permission = $2`, userID, string(p))
	if err != nil {
		return false, fmt.Errorf("revoke permission: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
