package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa junto con su primer administrador.
type CreateCompanyRequest struct {
	Name         string              `json:"name" validate:"required,min=1,max=200"`
	Document     string              `json:"document" validate:"required,min=1,max=20"`
	Address      string              `json:"address"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email" validate:"omitempty,email"`
	BusinessType string              `json:"business_type" validate:"required"`
	Admin        CompanyAdminRequest `json:"admin" validate:"required"`
}

// CompanyAdminRequest credenciales del administrador inicial.
type CompanyAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// UpdateCompanyRequest datos editables de la empresa. Documento, tipo de negocio y estado no cambian aquí.
type UpdateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// ChangeBusinessTypeRequest entrada para cambiar el perfil de una empresa.
type ChangeBusinessTypeRequest struct {
	BusinessType string `json:"business_type" validate:"required"`
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Document     string        `json:"document"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	BusinessType string        `json:"business_type"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Admin        *UserResponse `json:"admin,omitempty"` // solo en la respuesta de alta
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
