package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/pkg/logger"
)

// AccessLog registra cada petición (método, ruta, status, latencia, request id).
// Va después de requestid.New() para tener el id en Locals.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler aún no escribió la respuesta
			status, _ = statusFor(err)
		}
		log.Info().
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}
