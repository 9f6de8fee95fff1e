package dto

import (
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/permission"
)

// SavePermissionsRequest permisos por módulo a guardar para un rol.
type SavePermissionsRequest struct {
	Modules map[string]permission.Grant `json:"modules" validate:"required"`
}

// RolePermissionsResponse permisos de un rol y su validación contra el perfil del tenant.
// Effective contiene solo los módulos activos para el tenant.
type RolePermissionsResponse struct {
	Role        string                     `json:"role"`
	Implicit    bool                       `json:"implicit"`
	Permissions permission.RolePermissions `json:"permissions"`
	Effective   permission.RolePermissions `json:"effective"`
	Report      permission.Report          `json:"report"`
	UpdatedBy   string                     `json:"updated_by,omitempty"`
	UpdatedAt   *time.Time                 `json:"updated_at,omitempty"`
}

// RolePermissionsListResponse permisos de todos los roles configurados.
type RolePermissionsListResponse struct {
	Items []RolePermissionsResponse `json:"items"`
}

// PermissionCheckResponse resultado de Can.
type PermissionCheckResponse struct {
	Role    string `json:"role"`
	Module  string `json:"module"`
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
}

// PermissionSchemaResponse esquema global de permisos.
type PermissionSchemaResponse struct {
	Modules map[string]permission.ModuleSchema `json:"modules"`
}
