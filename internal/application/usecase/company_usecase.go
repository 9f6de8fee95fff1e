package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/profile"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	users   repository.UserRepository
	modules *ModuleService
	log     *logger.Logger
}

// NewCompanyUseCase construye el caso de uso. log puede ser nil.
func NewCompanyUseCase(repo repository.CompanyRepository, users repository.UserRepository, modules *ModuleService, log *logger.Logger) *CompanyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CompanyUseCase{repo: repo, users: users, modules: modules, log: log.Component("companies")}
}

// Create crea una nueva empresa y su administrador inicial. Devuelve domain.ErrDuplicate si el
// documento ya existe y domain.ErrUnknownBusinessType si el tipo de negocio no está en el catálogo.
// Si el admin no se puede crear, la empresa se elimina.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !uc.modules.Catalog().Has(profile.BusinessType(in.BusinessType)) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBusinessType, in.BusinessType)
	}
	existing, _ := uc.repo.GetByDocument(in.Document)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Document:     in.Document,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		BusinessType: in.BusinessType,
		Status:       entity.CompanyActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin, err := NewActiveUser(company.ID, in.Admin.Email, in.Admin.Name, entity.RoleAdmin, in.Admin.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, admin); err != nil {
		if delErr := uc.repo.Delete(company.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("company_id", company.ID).Msg("empresa sin admin: no se pudo deshacer el alta")
		}
		return nil, fmt.Errorf("crear admin: %w", err)
	}
	uc.log.Info().Str("company_id", company.ID).Str("business_type", company.BusinessType).Str("admin_id", admin.ID).Msg("empresa creada")

	out := entityToCompanyResponse(company)
	out.Admin = ToUserResponse(admin)
	return out, nil
}

// Update modifica los datos de contacto de la empresa. domain.ErrCompanyNotFound si no existe.
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	company.Name = in.Name
	company.Address = in.Address
	company.Phone = in.Phone
	company.Email = in.Email
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ChangeBusinessType cambia el perfil de la empresa. Los permisos ya guardados no se tocan:
// los de módulos que dejan de estar activos quedan inertes.
// Una lectura concurrente que empezó antes del cambio puede volver a cachear el tipo anterior
// tras la invalidación; ese valor vive como máximo REDIS_TTL_SECONDS.
func (uc *CompanyUseCase) ChangeBusinessType(ctx context.Context, companyID string, in dto.ChangeBusinessTypeRequest) (*dto.CompanyResponse, error) {
	if !uc.modules.Catalog().Has(profile.BusinessType(in.BusinessType)) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBusinessType, in.BusinessType)
	}
	if err := uc.repo.UpdateBusinessType(ctx, companyID, in.BusinessType); err != nil {
		return nil, err
	}
	uc.modules.Invalidate(ctx, companyID)

	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Document:     c.Document,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		BusinessType: c.BusinessType,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
