package entity

import "time"

// Roles válidos para User.
const (
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleStaff      = "staff"
	RolePending    = "pending"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusPending  = "pending"
	UserStatusInactive = "inactive"
)

// User representa el perfil de un usuario del restaurante.
// Se crea en signup con status pending y rol pending hasta que un manager lo aprueba.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	AvatarURL    string
	Role         string // manager, supervisor, staff, pending
	Status       string // active, pending, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleManager, RoleSupervisor, RoleStaff, RolePending:
		return true
	}
	return false
}

// IsValidUserStatus indica si status es uno de los estados de cuenta conocidos.
func IsValidUserStatus(status string) bool {
	switch status {
	case UserStatusActive, UserStatusPending, UserStatusInactive:
		return true
	}
	return false
}
