package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/permission"
	"github.com/jhoicas/Gestion-api/internal/domain/profile"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// PermissionUseCase administra los permisos por rol y decide si un rol puede ejecutar una acción.
// El rol admin tiene implícitamente todos los permisos de los módulos activos.
type PermissionUseCase struct {
	repo    repository.RolePermissionRepository
	modules *ModuleService
	schema  *permission.Schema
	log     *logger.Logger
}

// NewPermissionUseCase construye el caso de uso. schema nil usa permission.DefaultSchema().
func NewPermissionUseCase(repo repository.RolePermissionRepository, modules *ModuleService, schema *permission.Schema, log *logger.Logger) *PermissionUseCase {
	if schema == nil {
		schema = permission.DefaultSchema()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PermissionUseCase{repo: repo, modules: modules, schema: schema, log: log.Component("permissions")}
}

// Schema esquema global.
func (uc *PermissionUseCase) Schema() *dto.PermissionSchemaResponse {
	return &dto.PermissionSchemaResponse{Modules: uc.schema.Snapshot()}
}

// Save valida los permisos contra el perfil de la empresa y guarda la versión saneada.
// Las violaciones no abortan: se descartan las entradas inválidas y se informan en el reporte.
func (uc *PermissionUseCase) Save(ctx context.Context, companyID, role, updatedBy string, in dto.SavePermissionsRequest) (*dto.RolePermissionsResponse, error) {
	if role == "" {
		return nil, fmt.Errorf("%w: role es obligatorio", domain.ErrInvalidInput)
	}
	if role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: el rol admin tiene todos los permisos", domain.ErrInvalidInput)
	}
	_, p, err := uc.modules.ProfileForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	requested := permission.RolePermissions{Role: role, Modules: in.Modules}
	if requested.Modules == nil {
		requested.Modules = map[string]permission.Grant{}
	}
	report := permission.Validate(uc.schema, p, requested)
	clean := permission.Sanitize(uc.schema, p, requested)

	now := time.Now()
	rp := &entity.RolePermission{
		CompanyID:   companyID,
		Role:        role,
		Permissions: clean,
		UpdatedBy:   updatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Upsert(ctx, rp); err != nil {
		return nil, err
	}
	if !report.Valid() {
		uc.log.Info().
			Str("company_id", companyID).
			Str("role", role).
			Int("violations", len(report.Violations)).
			Msg("permisos guardados con entradas descartadas")
	}

	out := toRolePermissionsResponse(rp, p)
	out.Report = report
	return out, nil
}

// Get permisos del rol con su reporte contra el perfil actual. domain.ErrNotFound si no existen.
func (uc *PermissionUseCase) Get(ctx context.Context, companyID, role string) (*dto.RolePermissionsResponse, error) {
	_, p, err := uc.modules.ProfileForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleAdmin {
		return uc.implicitAdmin(p), nil
	}
	rp, err := uc.repo.Get(ctx, companyID, role)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, domain.ErrNotFound
	}
	out := toRolePermissionsResponse(rp, p)
	out.Report = permission.Validate(uc.schema, p, rp.Permissions)
	return out, nil
}

// List permisos de todos los roles configurados de la empresa, más el admin implícito.
func (uc *PermissionUseCase) List(ctx context.Context, companyID string) (*dto.RolePermissionsListResponse, error) {
	_, p, err := uc.modules.ProfileForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RolePermissionsResponse, 0, len(list)+1)
	items = append(items, *uc.implicitAdmin(p))
	for _, rp := range list {
		out := toRolePermissionsResponse(rp, p)
		out.Report = permission.Validate(uc.schema, p, rp.Permissions)
		items = append(items, *out)
	}
	return &dto.RolePermissionsListResponse{Items: items}, nil
}

// Delete elimina los permisos de un rol.
func (uc *PermissionUseCase) Delete(ctx context.Context, companyID, role string) error {
	if role == "" || role == entity.RoleAdmin {
		return fmt.Errorf("%w: rol %q no editable", domain.ErrInvalidInput, role)
	}
	return uc.repo.Delete(ctx, companyID, role)
}

// Can decide si el rol puede ejecutar action sobre module en la empresa.
// Sin permisos configurados el rol no puede nada (salvo admin).
func (uc *PermissionUseCase) Can(ctx context.Context, companyID, role, module, action string) (bool, error) {
	if role == "" || module == "" || action == "" {
		return false, fmt.Errorf("%w: role, module y action son obligatorios", domain.ErrInvalidInput)
	}
	_, p, err := uc.modules.ProfileForCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	if role == entity.RoleAdmin {
		return permission.Allows(p, permission.Full(uc.schema, p, role), module, action), nil
	}
	rp, err := uc.repo.Get(ctx, companyID, role)
	if err != nil {
		return false, err
	}
	if rp == nil {
		return false, nil
	}
	return permission.Allows(p, rp.Permissions, module, action), nil
}

// Check como Can pero con la respuesta completa.
func (uc *PermissionUseCase) Check(ctx context.Context, companyID, role, module, action string) (*dto.PermissionCheckResponse, error) {
	ok, err := uc.Can(ctx, companyID, role, module, action)
	if err != nil {
		return nil, err
	}
	return &dto.PermissionCheckResponse{Role: role, Module: module, Action: action, Allowed: ok}, nil
}

func (uc *PermissionUseCase) implicitAdmin(p profile.Profile) *dto.RolePermissionsResponse {
	full := permission.Full(uc.schema, p, entity.RoleAdmin)
	return &dto.RolePermissionsResponse{
		Role:        entity.RoleAdmin,
		Implicit:    true,
		Permissions: full,
		Effective:   full,
		Report:      permission.Validate(uc.schema, p, full),
	}
}

func toRolePermissionsResponse(rp *entity.RolePermission, p profile.Profile) *dto.RolePermissionsResponse {
	updatedAt := rp.UpdatedAt
	return &dto.RolePermissionsResponse{
		Role:        rp.Role,
		Permissions: rp.Permissions,
		Effective:   permission.Effective(p, rp.Permissions),
		UpdatedBy:   rp.UpdatedBy,
		UpdatedAt:   &updatedAt,
	}
}
