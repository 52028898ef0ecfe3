package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
)

// AuthHandler maneja registro, login y perfil.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func errInvalidBody() error {
	return domain.NewValidationError("body", "cuerpo inválido")
}

// Register godoc
// @Summary      Registrar manager
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "firstname, lastname, email, phonenumber, password"
// @Success      201   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "manager registrado", out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "sesión iniciada", out)
}

// Me godoc
// @Summary      Perfil del manager autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.ManagerResponse}
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetManagerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "perfil", out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody()
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetManagerID(c), in); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "contraseña actualizada", fiber.Map{})
}
