package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Locals keys para ManagerID, Role y permiso de escritura en Fiber.
const (
	LocalManagerID = "manager_id"
	LocalRole      = "role"
	LocalCanWrite  = "can_write"
)

// Authenticator valida el token y devuelve el manager vigente.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Manager, error)
}

// AuthMiddleware valida el Bearer Token y comprueba que el manager siga existiendo.
// Carga ManagerID, Role y el permiso de escritura en c.Locals.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "formato: Bearer <token>")
		}
		manager, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		c.Locals(LocalManagerID, manager.ID)
		c.Locals(LocalRole, manager.Role)
		c.Locals(LocalCanWrite, manager.CanWrite())
		return c.Next()
	}
}

// RequireRole permite el acceso solo a los roles indicados (después de AuthMiddleware).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return domain.ErrUnauthorized
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return domain.ErrForbidden
	}
}

// RequireWriteAccess rechaza con 403 a las cuentas restringidas (después de AuthMiddleware).
func RequireWriteAccess(c *fiber.Ctx) error {
	if ok, _ := c.Locals(LocalCanWrite).(bool); !ok {
		return domain.ErrForbidden
	}
	return c.Next()
}

// GetManagerID devuelve el ManagerID del contexto (después del middleware de auth).
func GetManagerID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalManagerID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

func actorFrom(c *fiber.Ctx) catalog.Actor {
	return catalog.Actor{ID: GetManagerID(c), Role: GetRole(c)}
}
