package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven nil, nil cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// ListByEmail todas las cuentas con ese email (una por empresa como máximo).
	ListByEmail(ctx context.Context, email string) ([]*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	// UpdateRole devuelve domain.ErrUserNotFound si el usuario no pertenece a la empresa.
	UpdateRole(ctx context.Context, companyID, userID, role string) error
}
