package entity

import (
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/permission"
)

// RolePermission permisos configurados por un administrador para un rol de la empresa.
type RolePermission struct {
	CompanyID   string
	Role        string
	Permissions permission.RolePermissions
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
