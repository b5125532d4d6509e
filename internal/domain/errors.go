package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrEmailDomainNotAllowed = errors.New("dominio de email no permitido")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidCNPJ           = errors.New("CNPJ inválido")
	ErrInvalidPermission     = errors.New("permiso desconocido")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrAccountPending        = errors.New("cuenta pendiente de aprobación")
	ErrAccountInactive       = errors.New("cuenta inactiva")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
)
