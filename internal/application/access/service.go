// Package access aplica el modelo de permisos contra la base de datos:
// carga rol y concesiones del usuario y delega la decisión al resolvedor de dominio.
package access

import (
	"context"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	domainaccess "github.com/jhoicas/zola-inventory-api/internal/domain/access"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// Service consulta y administra permisos.
type Service struct {
	users repository.UserRepository
	perms repository.PermissionRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewService construye el servicio.
func NewService(users repository.UserRepository, perms repository.PermissionRepository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: users, perms: perms, log: log.Named("access"), now: time.Now}
}

// Can indica si el usuario puede ejercer p. Usa el rol vigente en la base (no el del token)
// y niega todo a cuentas que no están activas.
func (s *Service) Can(ctx context.Context, userID string, p entity.Permission) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return false, nil
	}
	if user.Role == entity.RoleManager {
		return domainaccess.Can(user.Role, nil, p), nil
	}
	grants, err := s.grants(ctx, userID)
	if err != nil {
		return false, err
	}
	return domainaccess.Can(user.Role, grants, p), nil
}

// IsActive indica si la cuenta existe y está activa.
func (s *Service) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.Status == entity.UserStatusActive, nil
}

// HasRole indica si el usuario está activo y su rol vigente es uno de roles.
func (s *Service) HasRole(ctx context.Context, userID string, roles ...string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return false, nil
	}
	for _, r := range roles {
		if user.Role == r {
			return true, nil
		}
	}
	return false, nil
}

// Effective lista los permisos efectivos del usuario para el rol indicado.
func (s *Service) Effective(ctx context.Context, userID, role string) ([]string, error) {
	grants, err := s.grants(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toStrings(domainaccess.Effective(role, grants)), nil
}

// UserPermissions concesiones explícitas y permisos efectivos de un usuario.
func (s *Service) UserPermissions(ctx context.Context, userID string) (*dto.UserPermissionsResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	list, err := s.perms.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.UserPermissionsResponse{
		UserID: user.ID,
		Role:   user.Role,
		Grants: make([]dto.PermissionGrantResponse, 0, len(list)),
	}
	perms := make([]entity.Permission, 0, len(list))
	for _, g := range list {
		perms = append(perms, g.Permission)
		out.Grants = append(out.Grants, dto.PermissionGrantResponse{
			Permission: string(g.Permission),
			GrantedBy:  g.GrantedBy,
			GrantedAt:  g.GrantedAt,
		})
	}
	out.Effective = toStrings(domainaccess.Effective(user.Role, domainaccess.NewGrants(perms...)))
	return out, nil
}

// Toggle concede el permiso si no estaba concedido, o lo revoca si lo estaba.
func (s *Service) Toggle(ctx context.Context, managerID, userID string, p entity.Permission) (*dto.TogglePermissionResponse, error) {
	if !entity.IsKnownPermission(p) {
		return nil, domain.ErrInvalidPermission
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	revoked, err := s.perms.Revoke(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	if revoked {
		s.log.Info().Str("user_id", userID).Str("permission", string(p)).Str("by", managerID).Msg("permiso revocado")
		return &dto.TogglePermissionResponse{Permission: string(p), Granted: false}, nil
	}

	if err := s.perms.Grant(ctx, entity.PermissionGrant{
		UserID:     userID,
		Permission: p,
		GrantedBy:  managerID,
		GrantedAt:  s.now(),
	}); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("permission", string(p)).Str("by", managerID).Msg("permiso concedido")
	return &dto.TogglePermissionResponse{Permission: string(p), Granted: true}, nil
}

func (s *Service) grants(ctx context.Context, userID string) (domainaccess.Grants, error) {
	list, err := s.perms.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	perms := make([]entity.Permission, 0, len(list))
	for _, g := range list {
		perms = append(perms, g.Permission)
	}
	return domainaccess.NewGrants(perms...), nil
}

func toStrings(perms []entity.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
