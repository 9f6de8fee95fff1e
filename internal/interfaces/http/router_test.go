package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/permission"
	apphttp "github.com/jhoicas/Gestion-api/internal/interfaces/http"
)

const (
	otherCompanyID  = "00000000-0000-0000-0000-000000000003"
	brokenCompanyID = "00000000-0000-0000-0000-000000000004"
)

// newRouterApp monta el router completo sobre repositorios en memoria.
// La empresa del token (testCompanyID) es Commerce.
func newRouterApp(t *testing.T) *fiber.App {
	t.Helper()
	companies := newMemCompanyRepo(
		&entity.Company{ID: testCompanyID, Name: "Loja", Document: "111", BusinessType: "Commerce", Status: entity.CompanyActive},
		&entity.Company{ID: otherCompanyID, Name: "Agência", Document: "222", BusinessType: "CRMOnly", Status: entity.CompanyActive},
		&entity.Company{ID: brokenCompanyID, Name: "Padaria", Document: "555", BusinessType: "Bakery", Status: entity.CompanyActive},
	)
	modules := usecase.NewModuleService(companies, nil, nil, nil)
	users := newMemUserRepo()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:     usecase.NewCompanyUseCase(companies, users, modules, nil),
		AuthUC:        auth.NewAuthUseCase(users, companies, modules, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil),
		ModuleService: modules,
		PermissionUC:  usecase.NewPermissionUseCase(newMemRolePermissionRepo(), modules, nil, nil),
		UserUC:        usecase.NewUserUseCase(users, nil),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, target, authHeader string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestProfiles_ListadoYResolucion(t *testing.T) {
	app := newRouterApp(t)

	resp := call(t, app, http.MethodGet, "/api/profiles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.BusinessTypeListResponse
	decode(t, resp, &list)
	assert.Contains(t, list.Items, "Commerce/Fiscal")
	assert.Contains(t, list.Items, "School")

	resp = call(t, app, http.MethodGet, "/api/profiles/Commerce/Fiscal", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prof dto.ProfileResponse
	decode(t, resp, &prof)
	assert.Equal(t, "Commerce/Fiscal", prof.BusinessType)
	assert.True(t, prof.Modules["fiscal"].Active)
	assert.Contains(t, prof.ActivePaths, "cashier")

	resp = call(t, app, http.MethodGet, "/api/profiles/Bakery", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMe_PerfilYModulos(t *testing.T) {
	app := newRouterApp(t)
	tok := tokenForRole(t, "vendedor")

	resp := call(t, app, http.MethodGet, "/api/me/profile", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/me/profile", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prof dto.ProfileResponse
	decode(t, resp, &prof)
	assert.Equal(t, "Commerce", prof.BusinessType)
	assert.False(t, prof.Modules["fiscal"].Active)

	resp = call(t, app, http.MethodGet, "/api/me/modules?path=stock.components.products", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check dto.ModuleCheckResponse
	decode(t, resp, &check)
	assert.True(t, check.Active)

	resp = call(t, app, http.MethodGet, "/api/me/modules?path=crm", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &check)
	assert.False(t, check.Active)

	resp = call(t, app, http.MethodGet, "/api/me/modules", tok, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoles_CicloDePermisos(t *testing.T) {
	app := newRouterApp(t)
	admin := tokenForRole(t, "admin")
	vendedor := tokenForRole(t, "vendedor")

	body := dto.SavePermissionsRequest{Modules: map[string]permission.Grant{
		"cashier": {Actions: []string{"view", "add", "teleport"}},
		"crm":     {Actions: []string{"view"}},
	}}

	resp := call(t, app, http.MethodPut, "/api/roles/vendedor/permissions", vendedor, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin guarda permisos")

	resp = call(t, app, http.MethodPut, "/api/roles/vendedor/permissions", admin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var saved dto.RolePermissionsResponse
	decode(t, resp, &saved)
	require.Len(t, saved.Report.Violations, 1)
	assert.Equal(t, "teleport", saved.Report.Violations[0].Value)
	assert.Equal(t, []string{"crm"}, saved.Report.Inert)

	resp = call(t, app, http.MethodGet, "/api/roles/vendedor/permissions/check?module=cashier&action=add", vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check dto.PermissionCheckResponse
	decode(t, resp, &check)
	assert.True(t, check.Allowed)

	resp = call(t, app, http.MethodGet, "/api/roles/vendedor/permissions/check?module=crm&action=view", vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &check)
	assert.False(t, check.Allowed, "crm inactivo en Commerce")

	resp = call(t, app, http.MethodGet, "/api/roles", vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.RolePermissionsListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "admin", list.Items[0].Role)

	resp = call(t, app, http.MethodGet, "/api/roles/cajero/permissions", admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/roles/admin/permissions", admin, body)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "admin no es editable")

	resp = call(t, app, http.MethodPut, "/api/roles/vendedor/permissions", admin, map[string]any{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "modules es requerido")

	resp = call(t, app, http.MethodDelete, "/api/roles/vendedor/permissions", admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/roles/vendedor/permissions", admin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPermissionSchema(t *testing.T) {
	app := newRouterApp(t)
	resp := call(t, app, http.MethodGet, "/api/permissions/schema", tokenForRole(t, "cajero"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var schema dto.PermissionSchemaResponse
	decode(t, resp, &schema)
	assert.Contains(t, schema.Modules, "fiscal")
	assert.Contains(t, schema.Modules["cashier"].Actions, "add")
}

func TestCompanies_TipoDeNegocio(t *testing.T) {
	app := newRouterApp(t)
	admin := tokenForRole(t, "admin")

	resp := call(t, app, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: "Padaria", Document: "333", BusinessType: "Bakery", Admin: ownerOf("padaria")})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: "Escola", Document: "444", BusinessType: "School", Admin: ownerOf("escola")})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CompanyResponse
	decode(t, resp, &created)
	assert.Equal(t, "School", created.BusinessType)

	target := "/api/companies/" + testCompanyID + "/business-type"

	resp = call(t, app, http.MethodPut, target, tokenForRole(t, "vendedor"), dto.ChangeBusinessTypeRequest{BusinessType: "Commerce/Fiscal"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/companies/"+otherCompanyID+"/business-type", admin, dto.ChangeBusinessTypeRequest{BusinessType: "Commerce"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo la empresa del token")

	resp = call(t, app, http.MethodPut, target, admin, dto.ChangeBusinessTypeRequest{BusinessType: "Bakery"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = call(t, app, http.MethodPut, target, admin, dto.ChangeBusinessTypeRequest{BusinessType: "Commerce/Fiscal"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var changed dto.CompanyResponse
	decode(t, resp, &changed)
	assert.Equal(t, "Commerce/Fiscal", changed.BusinessType)

	resp = call(t, app, http.MethodGet, "/api/me/modules?path=fiscal", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check dto.ModuleCheckResponse
	decode(t, resp, &check)
	assert.True(t, check.Active)
}

func ownerOf(slug string) dto.CompanyAdminRequest {
	return dto.CompanyAdminRequest{Email: "dono@" + slug + ".test", Password: "secreta-123"}
}

// createCompany da de alta una empresa con su admin y devuelve la respuesta.
func createCompany(t *testing.T, app *fiber.App, document, businessType string, admin dto.CompanyAdminRequest) dto.CompanyResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{
		Name: "Empresa " + document, Document: document, BusinessType: businessType, Admin: admin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CompanyResponse
	decode(t, resp, &out)
	return out
}

func login(t *testing.T, app *fiber.App, in dto.LoginRequest) (int, dto.LoginResponse) {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", in)
	var out dto.LoginResponse
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return resp.StatusCode, out
	}
	decode(t, resp, &out)
	return resp.StatusCode, out
}

func TestAuth_RegistroLoginYRoles(t *testing.T) {
	app := newRouterApp(t)
	company := createCompany(t, app, "777", "Commerce", ownerOf("loja"))
	require.NotNil(t, company.Admin)
	assert.Equal(t, "admin", company.Admin.Role)

	register := func(email, role string) dto.UserResponse {
		t.Helper()
		resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
			Email: email, Password: "secreta-123", CompanyID: company.ID, Role: role,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var u dto.UserResponse
		decode(t, resp, &u)
		return u
	}
	seller := register("ventas@loja.test", "")
	assert.Equal(t, "vendedor", seller.Role)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "ventas@loja.test", Password: "secreta-123", CompanyID: company.ID,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "x@y.test", Password: "secreta-123", CompanyID: "00000000-0000-0000-0000-0000000000ff",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	code, _ := login(t, app, dto.LoginRequest{Email: "dono@loja.test", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, out := login(t, app, dto.LoginRequest{Email: "dono@loja.test", Password: "secreta-123"})
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, out.Token)
	require.NotNil(t, out.Profile)
	assert.Equal(t, "Commerce", out.Profile.BusinessType)
	assert.Contains(t, out.Profile.ActivePaths, "cashier")
	bearer := "Bearer " + out.Token

	resp = call(t, app, http.MethodGet, "/api/users", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.UserListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 20, list.Page.Limit)

	resp = call(t, app, http.MethodPut, "/api/users/"+seller.ID+"/role", bearer, dto.ChangeRoleRequest{Role: "cajero"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var changed dto.UserResponse
	decode(t, resp, &changed)
	assert.Equal(t, "cajero", changed.Role)

	// el token viejo conserva el rol anterior; el nuevo rol rige desde el siguiente login
	code, relogin := login(t, app, dto.LoginRequest{Email: "ventas@loja.test", Password: "secreta-123"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cajero", relogin.User.Role)

	resp = call(t, app, http.MethodPut, "/api/users/"+company.Admin.ID+"/role", bearer, dto.ChangeRoleRequest{Role: "cajero"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no se cambia el rol propio")

	resp = call(t, app, http.MethodPut, "/api/users/"+seller.ID+"/role", bearer, dto.ChangeRoleRequest{Role: "gerente"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/users", tokenForRole(t, "vendedor"), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuth_AutoregistroNoConcedeAdmin(t *testing.T) {
	app := newRouterApp(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "intruso@x.test", Password: "secreta-123", CompanyID: testCompanyID, Role: "admin",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "VALIDATION", e.Code)

	code, _ := login(t, app, dto.LoginRequest{Email: "intruso@x.test", Password: "secreta-123"})
	assert.Equal(t, http.StatusUnauthorized, code, "no se creó la cuenta")

	// un vendedor autoregistrado no puede tocar la empresa
	resp = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "intruso@x.test", Password: "secreta-123", CompanyID: testCompanyID,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code, out := login(t, app, dto.LoginRequest{Email: "intruso@x.test", Password: "secreta-123"})
	require.Equal(t, http.StatusOK, code)

	resp = call(t, app, http.MethodPut, "/api/companies/"+testCompanyID+"/business-type", "Bearer "+out.Token,
		dto.ChangeBusinessTypeRequest{BusinessType: "CRMOnly"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuth_MismoEmailEnDosEmpresas(t *testing.T) {
	app := newRouterApp(t)
	a := createCompany(t, app, "801", "Commerce", dto.CompanyAdminRequest{Email: "socio@grupo.test", Password: "clave-empresa-a"})
	b := createCompany(t, app, "802", "CRMOnly", dto.CompanyAdminRequest{Email: "socio@grupo.test", Password: "clave-empresa-b"})

	code, out := login(t, app, dto.LoginRequest{Email: "socio@grupo.test", Password: "clave-empresa-b"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, b.ID, out.User.CompanyID)
	assert.Equal(t, "CRMOnly", out.Profile.BusinessType)

	code, out = login(t, app, dto.LoginRequest{Email: "socio@grupo.test", Password: "clave-empresa-a"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, a.ID, out.User.CompanyID)

	code, _ = login(t, app, dto.LoginRequest{Email: "socio@grupo.test", Password: "clave-empresa-a", CompanyID: b.ID})
	assert.Equal(t, http.StatusUnauthorized, code)

	// misma contraseña en ambas: hace falta company_id
	c := createCompany(t, app, "803", "School", dto.CompanyAdminRequest{Email: "socio@grupo.test", Password: "clave-empresa-b"})
	code, _ = login(t, app, dto.LoginRequest{Email: "socio@grupo.test", Password: "clave-empresa-b"})
	assert.Equal(t, http.StatusConflict, code)

	code, out = login(t, app, dto.LoginRequest{Email: "socio@grupo.test", Password: "clave-empresa-b", CompanyID: c.ID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "School", out.Profile.BusinessType)
}

func TestCompanies_UpdateSoloAdminDeLaEmpresa(t *testing.T) {
	app := newRouterApp(t)
	company := createCompany(t, app, "901", "Restaurant", ownerOf("cantina"))
	code, out := login(t, app, dto.LoginRequest{Email: "dono@cantina.test", Password: "secreta-123"})
	require.Equal(t, http.StatusOK, code)
	bearer := "Bearer " + out.Token

	resp := call(t, app, http.MethodPut, "/api/companies/"+company.ID, bearer, dto.UpdateCompanyRequest{Name: "Cantina Nova", Phone: "555-0199"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.CompanyResponse
	decode(t, resp, &updated)
	assert.Equal(t, "Cantina Nova", updated.Name)
	assert.Equal(t, "Restaurant", updated.BusinessType)

	resp = call(t, app, http.MethodPut, "/api/companies/"+testCompanyID, bearer, dto.UpdateCompanyRequest{Name: "Ajena"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo la empresa del token")

	resp = call(t, app, http.MethodPut, "/api/companies/"+company.ID, bearer, dto.UpdateCompanyRequest{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/companies/"+testCompanyID, tokenForRole(t, "vendedor"), dto.UpdateCompanyRequest{Name: "X"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuth_LoginEmpresaConTipoDesconocido(t *testing.T) {
	app := newRouterApp(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "dono@padaria.test", Password: "secreta-123", CompanyID: brokenCompanyID,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "dono@padaria.test", Password: "secreta-123"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_BUSINESS_TYPE")
}

func TestValidacion_CuerposInvalidos(t *testing.T) {
	app := newRouterApp(t)

	cases := []struct {
		name      string
		target    string
		body      any
		wantField string
	}{
		{"email mal formado", "/api/auth/register", dto.RegisterRequest{Email: "no-es-email", Password: "secreta-123", CompanyID: testCompanyID}, "email (email)"},
		{"password corto", "/api/auth/register", dto.RegisterRequest{Email: "a@b.test", Password: "corta", CompanyID: testCompanyID}, "password (min=8)"},
		{"company_id no uuid", "/api/auth/register", dto.RegisterRequest{Email: "a@b.test", Password: "secreta-123", CompanyID: "no-existe"}, "company_id (uuid)"},
		{"rol fuera de catálogo", "/api/auth/register", dto.RegisterRequest{Email: "a@b.test", Password: "secreta-123", CompanyID: testCompanyID, Role: "gerente"}, "role (oneof="},
		{"autoregistro admin", "/api/auth/register", dto.RegisterRequest{Email: "a@b.test", Password: "secreta-123", CompanyID: testCompanyID, Role: "admin"}, "role (oneof="},
		{"empresa sin admin", "/api/companies", dto.CreateCompanyRequest{Name: "X", Document: "9", BusinessType: "Commerce"}, "admin"},
		{"login company_id no uuid", "/api/auth/login", dto.LoginRequest{Email: "a@b.test", Password: "x", CompanyID: "abc"}, "company_id (uuid)"},
		{"login sin password", "/api/auth/login", dto.LoginRequest{Email: "a@b.test"}, "password (required)"},
		{"empresa sin tipo", "/api/companies", dto.CreateCompanyRequest{Name: "X", Document: "9", Admin: ownerOf("x")}, "business_type (required)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, tc.target, "", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var e dto.ErrorResponse
			decode(t, resp, &e)
			assert.Equal(t, "VALIDATION", e.Code)
			assert.Contains(t, e.Message, tc.wantField)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
