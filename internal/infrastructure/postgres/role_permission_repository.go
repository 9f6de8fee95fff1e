package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.RolePermissionRepository = (*RolePermissionRepo)(nil)

// RolePermissionRepo persiste permisos por rol en role_permissions (columna JSONB).
type RolePermissionRepo struct {
	pool *pgxpool.Pool
}

// NewRolePermissionRepository construye el adaptador.
func NewRolePermissionRepository(pool *pgxpool.Pool) *RolePermissionRepo {
	return &RolePermissionRepo{pool: pool}
}

const rolePermissionColumns = `company_id, role, permissions, updated_by, created_at, updated_at`

func scanRolePermission(row pgx.Row) (*entity.RolePermission, error) {
	var (
		rp  entity.RolePermission
		raw []byte
	)
	if err := row.Scan(&rp.CompanyID, &rp.Role, &raw, &rp.UpdatedBy, &rp.CreatedAt, &rp.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &rp.Permissions); err != nil {
		return nil, fmt.Errorf("decode permissions %s/%s: %w", rp.CompanyID, rp.Role, err)
	}
	rp.Permissions.Role = rp.Role
	return &rp, nil
}

// Get devuelve nil, nil si no hay permisos para el rol.
func (r *RolePermissionRepo) Get(ctx context.Context, companyID, role string) (*entity.RolePermission, error) {
	query := `SELECT ` + rolePermissionColumns + ` FROM role_permissions WHERE company_id = $1 AND role = $2`
	rp, err := scanRolePermission(r.pool.QueryRow(ctx, query, companyID, role))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role permissions: %w", err)
	}
	return rp, nil
}

// Upsert crea o reemplaza los permisos del rol.
func (r *RolePermissionRepo) Upsert(ctx context.Context, rp *entity.RolePermission) error {
	raw, err := json.Marshal(rp.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	const query = `
		INSERT INTO role_permissions (` + rolePermissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, role) DO UPDATE
		   SET permissions = EXCLUDED.permissions,
		       updated_by  = EXCLUDED.updated_by,
		       updated_at  = EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query, rp.CompanyID, rp.Role, raw, rp.UpdatedBy, rp.CreatedAt, rp.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCompanyNotFound
		}
		return fmt.Errorf("upsert role permissions: %w", err)
	}
	return nil
}

// Delete elimina los permisos del rol (idempotente).
func (r *RolePermissionRepo) Delete(ctx context.Context, companyID, role string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM role_permissions WHERE company_id = $1 AND role = $2`, companyID, role)
	if err != nil {
		return fmt.Errorf("delete role permissions: %w", err)
	}
	return nil
}

// ListByCompany permisos de todos los roles de la empresa, ordenados por rol.
func (r *RolePermissionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.RolePermission, error) {
	query := `SELECT ` + rolePermissionColumns + ` FROM role_permissions WHERE company_id = $1 ORDER BY role`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	defer rows.Close()

	var list []*entity.RolePermission
	for rows.Next() {
		rp, err := scanRolePermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role permissions: %w", err)
		}
		list = append(list, rp)
	}
	return list, rows.Err()
}
