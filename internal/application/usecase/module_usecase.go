package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/profile"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// BusinessTypeCache caché opcional companyID -> tipo de negocio.
// La implementa *cache.BusinessTypeCache (Redis).
type BusinessTypeCache interface {
	Get(ctx context.Context, companyID string) (string, bool, error)
	Set(ctx context.Context, companyID, businessType string) error
	Invalidate(ctx context.Context, companyID string) error
}

// ModuleService resuelve el perfil de cada empresa y responde qué módulos tiene activos.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	catalog     *profile.Catalog
	cache       BusinessTypeCache
	log         *logger.Logger
}

// NewModuleService construye el servicio de módulos. cache y log pueden ser nil.
func NewModuleService(companyRepo repository.CompanyRepository, catalog *profile.Catalog, cache BusinessTypeCache, log *logger.Logger) *ModuleService {
	if catalog == nil {
		catalog = profile.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ModuleService{companyRepo: companyRepo, catalog: catalog, cache: cache, log: log.Component("modules")}
}

// Catalog catálogo usado por el servicio.
func (s *ModuleService) Catalog() *profile.Catalog {
	return s.catalog
}

// ListBusinessTypes claves del catálogo.
func (s *ModuleService) ListBusinessTypes() *dto.BusinessTypeListResponse {
	keys := s.catalog.Keys()
	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, string(k))
	}
	return &dto.BusinessTypeListResponse{Items: items}
}

// Resolve perfil de una clave del catálogo. domain.ErrUnknownBusinessType si no existe.
func (s *ModuleService) Resolve(key string) (*dto.ProfileResponse, error) {
	p, err := s.catalog.Resolve(profile.BusinessType(key))
	if err != nil {
		return nil, err
	}
	return toProfileResponse(key, p), nil
}

// ProfileForCompany resuelve el perfil de la empresa a partir de su tipo de negocio.
// Una empresa con tipo desconocido es un error de configuración: no hay perfil por defecto.
func (s *ModuleService) ProfileForCompany(ctx context.Context, companyID string) (profile.BusinessType, profile.Profile, error) {
	if companyID == "" {
		return "", nil, fmt.Errorf("%w: companyID es obligatorio", domain.ErrInvalidInput)
	}
	bt, err := s.businessType(ctx, companyID)
	if err != nil {
		return "", nil, err
	}
	p, err := s.catalog.Resolve(profile.BusinessType(bt))
	if err != nil {
		s.log.Error().Str("company_id", companyID).Str("business_type", bt).Msg("empresa con tipo de negocio desconocido")
		return "", nil, err
	}
	return profile.BusinessType(bt), p, nil
}

// CompanyProfile perfil de la empresa en formato de respuesta.
func (s *ModuleService) CompanyProfile(ctx context.Context, companyID string) (*dto.ProfileResponse, error) {
	bt, p, err := s.ProfileForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(string(bt), p), nil
}

// HasActiveModule informa si la ruta (módulo o módulo.components.componente) está activa
// para la empresa. Rutas inexistentes devuelven false sin error.
// Devuelve error ante fallos de infraestructura, empresa inexistente o tipo de negocio desconocido.
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("%w: path es obligatorio", domain.ErrInvalidInput)
	}
	_, p, err := s.ProfileForCompany(ctx, companyID)
	if err != nil {
		return false, err
	}
	return p.IsActive(path), nil
}

// CheckPath como HasActiveModule pero con la respuesta completa.
func (s *ModuleService) CheckPath(ctx context.Context, companyID, path string) (*dto.ModuleCheckResponse, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path es obligatorio", domain.ErrInvalidInput)
	}
	bt, p, err := s.ProfileForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.ModuleCheckResponse{BusinessType: string(bt), Path: path, Active: p.IsActive(path)}, nil
}

// Invalidate descarta el tipo de negocio cacheado de la empresa. No es atómico respecto de
// lecturas en curso: una de ellas puede reescribir el valor anterior, acotado por el TTL de la caché.
func (s *ModuleService) Invalidate(ctx context.Context, companyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché")
	}
}

// businessType consulta la caché y, si falla o no hay entrada, la base de datos.
// Los errores de caché no bloquean la petición.
func (s *ModuleService) businessType(ctx context.Context, companyID string) (string, error) {
	if s.cache != nil {
		bt, ok, err := s.cache.Get(ctx, companyID)
		if err != nil {
			s.log.Warn().Err(err).Str("company_id", companyID).Msg("caché no disponible")
		} else if ok {
			return bt, nil
		}
	}
	bt, err := s.companyRepo.GetBusinessType(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return "", err
		}
		return "", fmt.Errorf("module: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, companyID, bt); err != nil {
			s.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo cachear el tipo de negocio")
		}
	}
	return bt, nil
}

func toProfileResponse(key string, p profile.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		BusinessType: key,
		Modules:      p,
		ActivePaths:  p.ActivePaths(),
	}
}
