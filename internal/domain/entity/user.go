package entity

import (
	"slices"
	"time"
)

// Roles predefinidos para User. El rol admin recibe todos los permisos de los módulos
// activos; el resto depende de lo configurado en role_permissions.
const (
	RoleAdmin     = "admin"
	RoleCajero    = "cajero"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Estados de User.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

var knownRoles = []string{RoleAdmin, RoleCajero, RoleBodeguero, RoleVendedor}

// IsKnownRole informa si role es uno de los roles predefinidos.
func IsKnownRole(role string) bool {
	return slices.Contains(knownRoles, role)
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive usuario habilitado para iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}
