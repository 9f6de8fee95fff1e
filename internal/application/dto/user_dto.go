package dto

import "time"

// RegisterRequest autoregistro en una empresa existente. Role vacío = vendedor.
// admin no se admite: el primer admin nace con la empresa y los demás los promueve otro admin.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"omitempty,max=200"`
	Role      string `json:"role" validate:"omitempty,oneof=cajero bodeguero vendedor"`
}

// ChangeRoleRequest asignación de rol a un usuario de la empresa.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin cajero bodeguero vendedor"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse usuarios de la empresa.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest credenciales. CompanyID es necesario solo si el email existe en varias empresas
// con la misma contraseña.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	CompanyID string `json:"company_id" validate:"omitempty,uuid"`
}

// LoginResponse token JWT, usuario y perfil de la empresa para construir el menú.
type LoginResponse struct {
	Token   string           `json:"token"`
	User    UserResponse     `json:"user"`
	Profile *ProfileResponse `json:"profile"`
}
