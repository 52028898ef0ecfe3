package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/validation"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/catalog-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/catalog-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "catalog-api-test"
	testExpMin    = 60
	testPassword  = "Secreta#123"
)

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	authUC *auth.AuthUseCase
}

// newTestEnv app completa (router + ErrorHandler) sobre el almacén en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	validate := validation.New()
	authUC := auth.NewAuthUseCase(store.Managers(), validate, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	catalogUC := catalog.NewUseCase(store.Products(), store.History(), store.TxRunner(), validate)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(apphttp.ErrorHandlerConfig{})})
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: authUC, CatalogUC: catalogUC, Store: store, Service: "test"})
	return &testEnv{app: app, store: store, authUC: authUC}
}

func registerInput(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Firstname:   "Ana",
		Lastname:    "Pérez",
		Email:       email,
		PhoneNumber: "3001234567",
		Password:    testPassword,
	}
}

// managerToken registra un manager y devuelve "Bearer <token>".
func (e *testEnv) managerToken(t *testing.T, email string) string {
	t.Helper()
	out, err := e.authUC.Register(context.Background(), registerInput(email))
	require.NoError(t, err)
	return "Bearer " + out.Token
}

// adminToken crea un admin por el camino de bootstrap y hace login.
func (e *testEnv) adminToken(t *testing.T, email string) string {
	t.Helper()
	_, err := e.authUC.CreateAdmin(context.Background(), registerInput(email))
	require.NoError(t, err)
	out, err := e.authUC.Login(context.Background(), dto.LoginRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	return "Bearer " + out.Token
}

// restrictedToken crea un manager con cuenta restringida y firma su token directamente.
func (e *testEnv) restrictedToken(t *testing.T, email string) string {
	t.Helper()
	m := &entity.Manager{
		Firstname:    "Rita",
		Lastname:     "Gómez",
		Email:        email,
		PhoneNumber:  "3001234567",
		PasswordHash: "hash-no-usado",
		Role:         entity.RoleManager,
		Status:       entity.ManagerStatusRestricted,
	}
	require.NoError(t, e.store.Managers().Create(context.Background(), m))
	tok, err := pkgjwt.Generate(testJWTSecret, m.ID, m.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición; body se serializa como JSON si no es nil.
func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// envelope cuerpo de respuesta genérico (éxito o error).
type envelope struct {
	Message    string                  `json:"message"`
	Code       string                  `json:"code"`
	Data       json.RawMessage         `json:"data"`
	Pagination *dto.PaginationResponse `json:"pagination"`
	Errors     []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Stack string `json:"stack"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}
