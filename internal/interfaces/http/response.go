package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// respond escribe el sobre {message, data}.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Message: message, Data: data})
}

// respondPage escribe el sobre con metadatos de paginación.
func respondPage(c *fiber.Ctx, message string, data any, p dto.PaginationResponse) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Message: message, Data: data, Pagination: &p})
}
