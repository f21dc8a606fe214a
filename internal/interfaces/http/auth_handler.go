package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/dto"
)

// SessionCookie parámetros de la cookie que transporta el JWT.
type SessionCookie struct {
	Name   string
	Secure bool
}

// AuthHandler maneja registro, login, logout y usuario actual.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie SessionCookie
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nama, email, password, role"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "usuario registrado", Data: user})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token y además lo deja en la cookie de sesión (HttpOnly, SameSite=Lax).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		MaxAge:   int(h.uc.TokenLifetime().Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
