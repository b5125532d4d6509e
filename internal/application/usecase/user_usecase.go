package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/application/auth"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios: administración (manager) y perfil propio.
type UserUseCase struct {
	repo    repository.UserRepository
	storage ports.FileStorage
	log     *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia. storage puede ser nil.
func NewUserUseCase(repo repository.UserRepository, storage ports.FileStorage, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, storage: storage, log: log.Named("users")}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List perfiles con rol y estado.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateRole cambia el rol de otro usuario. Un manager no puede cambiar su propio rol.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorID, userID, role string) (*dto.UserResponse, error) {
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if actorID == userID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return uc.save(ctx, actorID, user, "rol actualizado")
}

// UpdateStatus aprueba o desactiva otra cuenta. Aprobar una cuenta cuyo rol sigue en
// pending la promueve a staff.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, actorID, userID, status string) (*dto.UserResponse, error) {
	if !entity.IsValidUserStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if actorID == userID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if status == entity.UserStatusActive && user.Role == entity.RolePending {
		user.Role = entity.RoleStaff
	}
	return uc.save(ctx, actorID, user, "estado actualizado")
}

// UpdateProfile edita el nombre del propio usuario.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FullName = name
	return uc.save(ctx, userID, user, "perfil actualizado")
}

// UploadAvatar guarda la imagen en el bucket avatars en {userId}/{aleatorio}.{ext}.
func (uc *UserUseCase) UploadAvatar(ctx context.Context, userID, filename string, r io.Reader) (*dto.UserResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrInvalidInput
	}
	ext, ok := ports.ImageExt(filename)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := uc.storage.Save(ctx, ports.BucketAvatars, ports.NewObjectKey(user.ID, ext), r)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url
	return uc.save(ctx, userID, user, "avatar actualizado")
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) save(ctx context.Context, actorID string, user *entity.User, msg string) (*dto.UserResponse, error) {
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("by", actorID).Str("role", user.Role).Str("status", user.Status).Msg(msg)
	return auth.ToUserResponse(user), nil
}
