package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger almacén con chequeo de conectividad.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde 200 si el almacén contesta; 503 en otro caso.
func Health(service string, store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": service})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
