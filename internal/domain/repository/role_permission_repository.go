package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// RolePermissionRepository puerto de persistencia de permisos por rol.
type RolePermissionRepository interface {
	// Get devuelve nil, nil si el rol no tiene permisos configurados.
	Get(ctx context.Context, companyID, role string) (*entity.RolePermission, error)
	Upsert(ctx context.Context, rp *entity.RolePermission) error
	Delete(ctx context.Context, companyID, role string) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.RolePermission, error)
}
