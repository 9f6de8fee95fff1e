package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/profile"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	AuthUC        *auth.AuthUseCase
	ModuleService *usecase.ModuleService
	PermissionUC  *usecase.PermissionUseCase
	UserUC        *usecase.UserUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta (con su admin) y consulta públicas; cambios solo admin de la propia empresa
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companyAdmin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin)}
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", append(companyAdmin, companyHandler.Update)...)
	companies.Put("/:id/business-type", append(companyAdmin, companyHandler.ChangeBusinessType)...)

	// Catálogo de perfiles (público). "/" debe ir antes del comodín.
	profiles := api.Group("/profiles")
	profileHandler := NewProfileHandler(deps.ModuleService)
	profiles.Get("/", profileHandler.List)
	profiles.Get("/*", profileHandler.Resolve)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	me := protected.Group("/me")
	me.Get("/profile", profileHandler.Me)
	me.Get("/modules", profileHandler.CheckModule)

	// Usuarios de la empresa: solo admin
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.ChangeRole)

	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	protected.Get("/permissions/schema", permissionHandler.Schema)

	// Roles: se administran desde el módulo de configuración
	roles := protected.Group("/roles", RequireModule(profile.ModuleSettings, deps.ModuleService))
	roles.Get("/", permissionHandler.List)
	roles.Get("/:role/permissions", permissionHandler.Get)
	roles.Get("/:role/permissions/check", permissionHandler.Check)
	roles.Put("/:role/permissions", RequireRole(entity.RoleAdmin), permissionHandler.Save)
	roles.Delete("/:role/permissions", RequireRole(entity.RoleAdmin), permissionHandler.Delete)
}
