package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/jwt"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// PermissionLister resuelve los permisos efectivos de un usuario.
type PermissionLister interface {
	Effective(ctx context.Context, userID, role string) ([]string, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y sesión.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	permissions   PermissionLister
	jwtCfg        JWTConfig
	allowedDomain string
	log           *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
// allowedDomain restringe signup y login a emails de ese dominio; vacío = sin restricción.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	permissions PermissionLister,
	jwtCfg JWTConfig,
	allowedDomain string,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:      userRepo,
		permissions:   permissions,
		jwtCfg:        jwtCfg,
		allowedDomain: strings.ToLower(strings.TrimPrefix(allowedDomain, "@")),
		log:           log.Named("auth"),
	}
}

// SignUp crea un usuario pendiente de aprobación: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if !uc.domainAllowed(email) {
		return nil, domain.ErrEmailDomainNotAllowed
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         entity.RolePending,
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("email", email).Msg("registro pendiente de aprobación")
	return ToUserResponse(user), nil
}

// Login verifica email/password y el estado de la cuenta, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if !uc.domainAllowed(email) {
		return nil, domain.ErrEmailDomainNotAllowed
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	switch user.Status {
	case entity.UserStatusActive:
	case entity.UserStatusPending:
		return nil, domain.ErrAccountPending
	default:
		return nil, domain.ErrAccountInactive
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("user_id", user.ID).Msg("login")
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado con sus permisos efectivos.
// Una cuenta no activa no tiene permisos.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != entity.UserStatusActive {
		return &dto.SessionResponse{User: *ToUserResponse(user), Permissions: []string{}}, nil
	}
	perms, err := uc.permissions.Effective(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{User: *ToUserResponse(user), Permissions: perms}, nil
}

func (uc *AuthUseCase) domainAllowed(email string) bool {
	if uc.allowedDomain == "" {
		return true
	}
	return strings.HasSuffix(email, "@"+uc.allowedDomain)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse convierte la entidad al DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
