package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios dentro de la empresa (listado y asignación de rol).
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso. log puede ser nil.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, log: log.Component("users")}
}

// List usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ChangeRole asigna un rol predefinido a un usuario de la empresa. Es la única vía para crear
// admins adicionales. Un usuario no puede cambiar su propio rol, así la empresa nunca se queda sin admin por error.
// El token del usuario afectado conserva el rol anterior hasta que expira (JWT_EXPIRATION_MINUTES);
// el nuevo rol rige desde su siguiente login.
func (uc *UserUseCase) ChangeRole(ctx context.Context, companyID, actorID, userID string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	if !entity.IsKnownRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	if actorID == userID {
		return nil, fmt.Errorf("%w: no se puede cambiar el rol propio", domain.ErrInvalidInput)
	}
	if err := uc.repo.UpdateRole(ctx, companyID, userID, in.Role); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	uc.log.Info().Str("company_id", companyID).Str("user_id", userID).Str("role", in.Role).Str("by", actorID).Msg("rol asignado")
	return ToUserResponse(u), nil
}

// NewActiveUser arma un usuario activo con la contraseña hasheada con bcrypt. name vacío = email.
func NewActiveUser(companyID, email, name, role, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if name == "" {
		name = email
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ToUserResponse convierte la entidad a su DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
