package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	apphttp "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/errtrack"
)

func errorApp(t *testing.T, production bool, tracker *errtrack.Tracker, err error) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(apphttp.ErrorHandlerConfig{
		Tracker:    tracker,
		Production: production,
	})})
	app.Get("/fail", func(c *fiber.Ctx) error { return err })
	return app
}

func getFail(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestErrorHandler_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewValidationError("name", "requerido"), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.Wrap(domain.ErrProductNotFound, "buscar"), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			env := decode(t, getFail(t, errorApp(t, true, nil, tc.err)))
			assert.Equal(t, tc.code, env.Code)
			assert.JSONEq(t, `{}`, string(env.Data))
			assert.Empty(t, env.Stack)
		})
	}
}

func TestErrorHandler_InternoOcultaMensaje(t *testing.T) {
	resp := getFail(t, errorApp(t, true, nil, errors.New("pool agotado")))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, "Internal Server Error", env.Message)
	assert.Empty(t, env.Stack, "en producción no se expone el stack")
}

func TestErrorHandler_StackFueraDeProduccion(t *testing.T) {
	env := decode(t, getFail(t, errorApp(t, false, nil, errors.New("pool agotado"))))

	assert.Contains(t, env.Stack, "pool agotado")
}

func TestErrorHandler_StackTambienEnErroresDeCliente(t *testing.T) {
	resp := getFail(t, errorApp(t, false, nil, errors.Wrap(domain.ErrProductNotFound, "buscar")))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	env := decode(t, resp)
	assert.Contains(t, env.Stack, "buscar")
	assert.Contains(t, env.Stack, "error_handler_test.go", "incluye los frames de pkg/errors")
}

func TestErrorHandler_CuentaRepeticiones(t *testing.T) {
	tracker := errtrack.New(time.Minute, 10)
	t.Cleanup(tracker.Close)
	app := errorApp(t, true, tracker, errors.New("timeout"))

	for i := 0; i < 3; i++ {
		getFail(t, app).Body.Close()
	}

	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, 3, tracker.Count("GET /fail: timeout"))
}
