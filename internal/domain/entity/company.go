package entity

import "time"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID           string
	Name         string
	Document     string // CNPJ/NIT u otro documento fiscal
	Address      string
	Phone        string
	Email        string
	BusinessType string // clave del catálogo de perfiles (ej. "Commerce/Fiscal")
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Estados válidos de Company.
const (
	CompanyActive    = "active"
	CompanySuspended = "suspended"
	CompanyInactive  = "inactive"
)

// IsActive empresa habilitada para operar (registro de usuarios y login).
func (c *Company) IsActive() bool {
	return c.Status == CompanyActive
}
