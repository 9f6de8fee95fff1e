package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain"
)

// ProfileHandler expone el catálogo de perfiles y el perfil de la empresa autenticada.
type ProfileHandler struct {
	modules *usecase.ModuleService
}

// NewProfileHandler construye el handler.
func NewProfileHandler(modules *usecase.ModuleService) *ProfileHandler {
	return &ProfileHandler{modules: modules}
}

// List godoc
// @Summary      Listar tipos de negocio
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  dto.BusinessTypeListResponse
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.modules.ListBusinessTypes())
}

// Resolve godoc
// @Summary      Perfil de un tipo de negocio (la clave puede contener "/", ej. Commerce/Fiscal)
// @Tags         profiles
// @Produce      json
// @Param        key  path  string  true  "Tipo de negocio"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{key} [get]
func (h *ProfileHandler) Resolve(c *fiber.Ctx) error {
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil || key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "tipo de negocio requerido"})
	}
	out, err := h.modules.Resolve(key)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownBusinessType) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_BUSINESS_TYPE", Message: "tipo de negocio '" + key + "' no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil de la empresa autenticada
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/me/profile [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	out, err := h.modules.CompanyProfile(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return entitlementError(c, err)
	}
	return c.JSON(out)
}

// CheckModule godoc
// @Summary      Consultar si una ruta de módulo está activa
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        path  query  string  true  "Ruta: modulo o modulo.components.componente"
// @Success      200  {object}  dto.ModuleCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/me/modules [get]
func (h *ProfileHandler) CheckModule(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "path es requerido"})
	}
	out, err := h.modules.CheckPath(c.UserContext(), GetCompanyID(c), path)
	if err != nil {
		return entitlementError(c, err)
	}
	return c.JSON(out)
}
