package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/pkg/jwt"
)

// Locals keys para los datos del usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// userLookup lo mínimo que necesita el middleware para confirmar que el usuario existe.
type userLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// AuthConfig dependencias del AuthMiddleware.
type AuthConfig struct {
	JWTSecret  string
	CookieName string
	Users      userLookup
}

// AuthMiddleware acepta el JWT desde "Authorization: Bearer <token>" o, si no hay header,
// desde la cookie de sesión. Verifica firma y expiración, carga el usuario y deja
// id, email y role en c.Locals. El role sale de la base, no del token.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := extractToken(c, cfg.CookieName)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		userID, _, _, err := jwt.Parse(cfg.JWTSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		user, err := cfg.Users.GetByID(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "el usuario del token no existe"})
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieName string) (string, *dto.ErrorResponse) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookieName != "" {
			if tok := strings.TrimSpace(c.Cookies(cookieName)); tok != "" {
				return tok, nil
			}
		}
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "se requiere sesión o Authorization header"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return tokenString, nil
}

// RequireRole permite el paso solo a los roles indicados. Debe ir después de AuthMiddleware.
//   - 401 MISSING_ROLE si no hay role en el contexto.
//   - 403 FORBIDDEN si el role no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene role"})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permisos para este recurso"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devuelve el role del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// IsAdmin indica si el usuario autenticado es admin.
func IsAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == entity.RoleAdmin
}
