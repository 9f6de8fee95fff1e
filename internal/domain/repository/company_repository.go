package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByDocument(document string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	Delete(id string) error
	// GetBusinessType devuelve la clave de perfil de la empresa; domain.ErrCompanyNotFound si no existe.
	GetBusinessType(ctx context.Context, companyID string) (string, error)
	UpdateBusinessType(ctx context.Context, companyID, businessType string) error
}
