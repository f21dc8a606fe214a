package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/memorytest"
	apphttp "github.com/jhoicas/storefront-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/storefront-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "sembako-api-test"
	testExpMin    = 60
)

type mwFixture struct {
	store    *memorytest.Store
	admin    *entity.User
	customer *entity.User
}

func newMWFixture(t *testing.T) *mwFixture {
	t.Helper()
	store := memorytest.NewStore()
	admin := &entity.User{Name: "Admin", Email: "admin@toko.test", PasswordHash: "x", Role: entity.RoleAdmin}
	customer := &entity.User{Name: "Budi", Email: "budi@mail.test", PasswordHash: "x", Role: entity.RoleCustomer}
	require.NoError(t, store.Users().Create(context.Background(), admin))
	require.NoError(t, store.Users().Create(context.Background(), customer))
	return &mwFixture{store: store, admin: admin, customer: customer}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar el usuario
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func (f *mwFixture) buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(apphttp.AuthConfig{JWTSecret: testJWTSecret, CookieName: testCookieName, Users: f.store.Users()}),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"email":   apphttp.GetEmail(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario con el rol indicado en el claim.
func tokenFor(t *testing.T, u *entity.User, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Email, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, f.admin, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.EqualValues(t, f.admin.ID, body["user_id"])
	assert.Equal(t, "admin@toko.test", body["email"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleAdmin, entity.RoleCustomer)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, f.customer, entity.RoleCustomer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ClienteBloqueadoEnRutaAdmin(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, f.customer, entity.RoleCustomer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El role del token no sirve para escalar: manda el de la base.
func TestRequireRole_RoleDelTokenNoEscala(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tokenFor(t, f.customer, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinAuthMiddleware_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleAdmin, entity.RoleCustomer)

	ghost := &entity.User{ID: 9999, Email: "ghost@mail.test"}
	expired, err := pkgjwt.Generate(testJWTSecret, f.admin.ID, f.admin.Email, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret", f.admin.ID, f.admin.Email, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin prefijo Bearer", tokenFor(t, f.admin, entity.RoleAdmin), "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"otro secret", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"usuario inexistente", "Bearer " + tokenFor(t, ghost, entity.RoleCustomer), "UNKNOWN_USER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestAuthMiddleware_DesdeCookie(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: tokenFor(t, f.customer, entity.RoleCustomer)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Con header presente la cookie se ignora.
func TestAuthMiddleware_HeaderTienePrioridad(t *testing.T) {
	f := newMWFixture(t)
	app := f.buildTestApp(entity.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token.invalido.aqui")
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: tokenFor(t, f.customer, entity.RoleCustomer)})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
