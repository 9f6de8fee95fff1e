package dto

import "github.com/jhoicas/Gestion-api/internal/domain/profile"

// ProfileResponse perfil resuelto de un tipo de negocio.
type ProfileResponse struct {
	BusinessType string          `json:"business_type"`
	Modules      profile.Profile `json:"modules"`
	ActivePaths  []string        `json:"active_paths"`
}

// BusinessTypeListResponse claves declaradas en el catálogo.
type BusinessTypeListResponse struct {
	Items []string `json:"items"`
}

// ModuleCheckResponse resultado de consultar una ruta de módulo.
type ModuleCheckResponse struct {
	BusinessType string `json:"business_type"`
	Path         string `json:"path"`
	Active       bool   `json:"active"`
}
