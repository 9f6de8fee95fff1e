package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService; el uso de interfaz evita el import circular.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, path string) (bool, error)
}

// permissionChecker contrato de RequirePermission. Lo implementa *usecase.PermissionUseCase.
type permissionChecker interface {
	Can(ctx context.Context, companyID, role, module, action string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica si el perfil de la empresa del token
// tiene activa la ruta indicada ("stock" o "stock.components.products").
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 401 Unauthorized → sin company_id en el contexto o empresa inexistente.
//   - 403 Forbidden    → módulo no ofrecido/inactivo, o tipo de negocio desconocido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireModule(path string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.HasActiveModule(c.UserContext(), companyID, path)
		if err != nil {
			return entitlementError(c, err)
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + path + "' no está activo para esta empresa",
			})
		}

		return c.Next()
	}
}

// RequirePermission exige que el módulo esté activo para la empresa y que el rol del token
// tenga la acción concedida. Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermission(module, action string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, role := GetCompanyID(c), GetRole(c)
		if companyID == "" || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id o role no encontrados en el token",
			})
		}

		ok, err := checker.Can(c.UserContext(), companyID, role, module, action)
		if err != nil {
			return entitlementError(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "el rol '" + role + "' no puede '" + action + "' en '" + module + "'",
			})
		}
		return c.Next()
	}
}

// entitlementError traduce los errores de resolución de perfil/permisos a HTTP.
func entitlementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "COMPANY_NOT_FOUND",
			Message: "la empresa del token no existe",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnknownBusinessType):
		// Configuración inválida del tenant: se rechaza en lugar de aplicar un perfil por defecto.
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "UNKNOWN_BUSINESS_TYPE",
			Message: "el tipo de negocio de la empresa no está configurado",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "MODULE_CHECK_FAILED",
			Message: "no se pudo verificar el acceso, intente más tarde",
		})
	}
}
