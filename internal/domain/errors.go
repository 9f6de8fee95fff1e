package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Entitlements
	ErrUnknownBusinessType = errors.New("tipo de negocio desconocido")
	ErrInvalidProfile      = errors.New("perfil inválido")
	ErrCompanyNotFound     = errors.New("empresa no encontrada")

	// Login con el mismo email y contraseña en varias empresas: hace falta company_id.
	ErrCompanyRequired = errors.New("indique la empresa")
)
