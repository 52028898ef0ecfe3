package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testManagerID = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "catalog-api-test"
)

func sign(t *testing.T, method gojwt.SigningMethod, key any, claims gojwt.Claims) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := Generate(testSecret, testManagerID, "admin", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, role, err := Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testManagerID, id)
	assert.Equal(t, "admin", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, testManagerID, "manager", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, testManagerID, "manager", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_SinManagerID(t *testing.T) {
	tok, err := Generate(testSecret, "", "manager", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_SubjectDistintoDelManager(t *testing.T) {
	tok := sign(t, gojwt.SigningMethodHS256, []byte(testSecret), Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "otro-manager",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		ManagerID: testManagerID,
		Role:      "admin",
	})

	_, _, err := Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_SinExpiracion(t *testing.T) {
	tok := sign(t, gojwt.SigningMethodHS256, []byte(testSecret), Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: testManagerID},
		ManagerID:        testManagerID,
	})

	_, _, err := Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_OtroAlgoritmoHMAC(t *testing.T) {
	tok := sign(t, gojwt.SigningMethodHS512, []byte(testSecret), Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   testManagerID,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		ManagerID: testManagerID,
	})

	_, _, err := Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", testManagerID, "manager", testIssuer, 60)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, _, err = Parse("", "x.y.z")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
