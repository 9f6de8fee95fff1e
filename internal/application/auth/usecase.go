package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/jwt"
	"github.com/jhoicas/Gestion-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	modules     *usecase.ModuleService
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. log puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, modules *usecase.ModuleService, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		modules:     modules,
		jwtCfg:      jwtCfg,
		log:         log.Component("auth"),
	}
}

// RegisterUser autoregistra un usuario en una empresa existente.
// Errores: domain.ErrEmailAlreadyExists, domain.ErrCompanyNotFound, domain.ErrForbidden (empresa no activa),
// domain.ErrInvalidInput (rol desconocido o admin).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if !entity.IsKnownRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	if role == entity.RoleAdmin {
		uc.log.Warn().Str("company_id", in.CompanyID).Str("email", in.Email).Msg("autoregistro como admin rechazado")
		return nil, fmt.Errorf("%w: el rol admin lo asigna otro administrador", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if !company.IsActive() {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.userRepo.GetByEmailAndCompany(ctx, in.Email, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	user, err := usecase.NewActiveUser(in.CompanyID, in.Email, in.Name, role, in.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login verifica credenciales y devuelve token, usuario y perfil de la empresa.
// Una empresa con tipo de negocio desconocido no puede iniciar sesión (domain.ErrUnknownBusinessType).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}

	prof, err := uc.modules.CompanyProfile(ctx, user.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownBusinessType) {
			uc.log.Error().Str("user_id", user.ID).Str("company_id", user.CompanyID).Msg("login rechazado: perfil de empresa inválido")
		}
		return nil, err
	}

	token, err := jwt.Sign(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("business_type", prof.BusinessType).Msg("login")
	return &dto.LoginResponse{
		Token:   token,
		User:    *usecase.ToUserResponse(user),
		Profile: prof,
	}, nil
}

// authenticate busca la cuenta cuya contraseña coincide. El email es único por empresa, no global:
// sin company_id se prueban todas las cuentas del email y, si coincide más de una, se exige la empresa.
func (uc *AuthUseCase) authenticate(ctx context.Context, in dto.LoginRequest) (*entity.User, error) {
	var candidates []*entity.User
	if in.CompanyID != "" {
		u, err := uc.userRepo.GetByEmailAndCompany(ctx, in.Email, in.CompanyID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			candidates = append(candidates, u)
		}
	} else {
		list, err := uc.userRepo.ListByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		candidates = list
	}
	if len(candidates) == 0 {
		return nil, domain.ErrUserNotFound
	}

	var match []*entity.User
	for _, u := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) == nil {
			match = append(match, u)
		}
	}
	switch len(match) {
	case 0:
		return nil, domain.ErrUnauthorized
	case 1:
		return match[0], nil
	default:
		return nil, domain.ErrCompanyRequired
	}
}
