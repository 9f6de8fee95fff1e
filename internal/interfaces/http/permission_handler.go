package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain"
)

// PermissionHandler administra los permisos por rol de la empresa autenticada.
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// Schema godoc
// @Summary      Esquema global de permisos por módulo
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PermissionSchemaResponse
// @Router       /api/permissions/schema [get]
func (h *PermissionHandler) Schema(c *fiber.Ctx) error {
	return c.JSON(h.uc.Schema())
}

// List godoc
// @Summary      Permisos de todos los roles de la empresa
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RolePermissionsListResponse
// @Router       /api/roles [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return permissionError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Permisos de un rol
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Param        role  path  string  true  "Rol"
// @Success      200  {object}  dto.RolePermissionsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{role}/permissions [get]
func (h *PermissionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("role"))
	if err != nil {
		return permissionError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar permisos de un rol
// @Description  Las entradas fuera del esquema se descartan y se informan en report.violations.
// @Description  Los módulos inactivos para la empresa se guardan sin validar (report.inert).
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        role  path  string                      true  "Rol"
// @Param        body  body  dto.SavePermissionsRequest  true  "Permisos por módulo"
// @Success      200   {object}  dto.RolePermissionsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/roles/{role}/permissions [put]
func (h *PermissionHandler) Save(c *fiber.Ctx) error {
	var in dto.SavePermissionsRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Save(c.UserContext(), GetCompanyID(c), c.Params("role"), GetUserID(c), in)
	if err != nil {
		return permissionError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar permisos de un rol
// @Tags         permissions
// @Security     BearerAuth
// @Param        role  path  string  true  "Rol"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/roles/{role}/permissions [delete]
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("role")); err != nil {
		return permissionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Check godoc
// @Summary      Consultar si un rol puede ejecutar una acción en un módulo
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Param        role    path   string  true  "Rol"
// @Param        module  query  string  true  "Módulo"
// @Param        action  query  string  true  "Acción"
// @Success      200  {object}  dto.PermissionCheckResponse
// @Router       /api/roles/{role}/permissions/check [get]
func (h *PermissionHandler) Check(c *fiber.Ctx) error {
	out, err := h.uc.Check(c.UserContext(), GetCompanyID(c), c.Params("role"), c.Query("module"), c.Query("action"))
	if err != nil {
		return permissionError(c, err)
	}
	return c.JSON(out)
}

func permissionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el rol no tiene permisos configurados"})
	}
	return entitlementError(c, err)
}
