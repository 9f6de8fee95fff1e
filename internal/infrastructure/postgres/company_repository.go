package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, name, document, address, phone, email, business_type, status, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Document, &c.Address, &c.Phone, &c.Email,
		&c.BusinessType, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Document, company.Address,
		company.Phone, company.Email, company.BusinessType, company.Status,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByDocument obtiene una empresa por documento fiscal.
func (r *CompanyRepo) GetByDocument(document string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE document = $1`
	c, err := scanCompany(r.pool.QueryRow(context.Background(), query, document))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by document: %w", err)
	}
	return c, nil
}

// Update actualiza los datos de contacto de la empresa.
// business_type tiene su propia operación y document/status no se editan.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		   SET name = $2, address = $3, phone = $4, email = $5, updated_at = $6
		 WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.Phone, company.Email, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina una empresa por ID; usuarios y permisos caen en cascada.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// GetBusinessType lee solo la clave de perfil; es la consulta caliente de los middlewares.
func (r *CompanyRepo) GetBusinessType(ctx context.Context, companyID string) (string, error) {
	var bt string
	err := r.pool.QueryRow(ctx, `SELECT business_type FROM companies WHERE id = $1`, companyID).Scan(&bt)
	if err != nil {
		if isNoRows(err) {
			return "", domain.ErrCompanyNotFound
		}
		return "", fmt.Errorf("get business type: %w", err)
	}
	return bt, nil
}

// UpdateBusinessType cambia la clave de perfil de la empresa.
func (r *CompanyRepo) UpdateBusinessType(ctx context.Context, companyID, businessType string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE companies SET business_type = $2, updated_at = now() WHERE id = $1`,
		companyID, businessType)
	if err != nil {
		return fmt.Errorf("update business type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
