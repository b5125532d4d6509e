package dto

import "time"

// SignUpRequest entrada de registro. La cuenta queda pendiente hasta que un manager la apruebe.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más perfil.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse salida de un perfil (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionResponse perfil del usuario autenticado con sus permisos efectivos.
type SessionResponse struct {
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateRoleRequest cambio de rol (solo manager).
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=manager supervisor staff pending"`
}

// UpdateStatusRequest cambio de estado de cuenta (solo manager).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending inactive"`
}

// UpdateProfileRequest edición del propio perfil.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
}

// PermissionGrantResponse concesión explícita.
type PermissionGrantResponse struct {
	Permission string    `json:"permission"`
	GrantedBy  string    `json:"granted_by"`
	GrantedAt  time.Time `json:"granted_at"`
}

// UserPermissionsResponse concesiones explícitas y permisos efectivos de un usuario.
type UserPermissionsResponse struct {
	UserID    string                    `json:"user_id"`
	Role      string                    `json:"role"`
	Grants    []PermissionGrantResponse `json:"grants"`
	Effective []string                  `json:"effective"`
}

// TogglePermissionResponse resultado del toggle.
type TogglePermissionResponse struct {
	Permission string `json:"permission"`
	Granted    bool   `json:"granted"`
}
