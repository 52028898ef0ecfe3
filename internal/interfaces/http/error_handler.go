package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/pkg/errtrack"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

const internalErrorMessage = "Internal Server Error"

// ErrorHandlerConfig dependencias del manejador central de errores.
type ErrorHandlerConfig struct {
	Log        *logger.Logger
	Tracker    *errtrack.Tracker // opcional
	Production bool              // sin stack en la respuesta
}

// statusFor traduce errores de dominio a status y código.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrManagerNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.As(err, &fe):
		return fe.Code, "HTTP_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// NewErrorHandler responder único: los handlers solo devuelven errores.
func NewErrorHandler(cfg ErrorHandlerConfig) fiber.ErrorHandler {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		body := dto.ErrorResponse{Message: err.Error(), Code: code}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			body.Errors = verr.Fields
		}
		if status >= fiber.StatusInternalServerError {
			body.Message = internalErrorMessage
			logServerError(c, log, cfg.Tracker, err)
		}
		if !cfg.Production {
			body.Stack = fmt.Sprintf("%+v", err)
		}
		return c.Status(status).JSON(body)
	}
}

// logServerError primera ocurrencia de la ventana a nivel error; las repeticiones a debug con el conteo.
func logServerError(c *fiber.Ctx, log *logger.Logger, tracker *errtrack.Tracker, err error) {
	fingerprint := c.Method() + " " + c.Route().Path + ": " + err.Error()
	hits := 1
	if tracker != nil {
		hits = tracker.Hit(fingerprint)
	}
	ev := log.Error()
	if hits > 1 {
		ev = log.Debug().Int("repeticiones", hits)
	}
	ev.Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("stack", fmt.Sprintf("%+v", err)).
		Err(err).
		Msg("error interno")
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
