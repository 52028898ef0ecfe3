// Package jwt emite y valida los tokens de sesión de los managers (HS256).
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Errores de firma y validación.
var (
	ErrMissingSecret = errors.New("jwt: secret de firma no configurado")
	ErrInvalidToken  = errors.New("jwt: token de sesión inválido")
)

// Claims del token de sesión. id repite el Subject: es el campo que leen los clientes.
type Claims struct {
	jwt.RegisteredClaims
	ManagerID string `json:"id"`
	Role      string `json:"role"` // manager | admin
}

// Generate firma un token de sesión para el manager, válido expMinutes minutos.
func Generate(secret, managerID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   managerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		ManagerID: managerID,
		Role:      role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "jwt: firmar token de sesión")
	}
	return signed, nil
}

// Parse exige HS256, expiración vigente y un manager identificado; devuelve su id y rol.
// Todo rechazo cumple errors.Is(err, ErrInvalidToken).
func Parse(secret, token string) (managerID, role string, err error) {
	if secret == "" {
		return "", "", ErrMissingSecret
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", errors.Wrap(ErrInvalidToken, err.Error())
	}
	if claims.ManagerID == "" || claims.ManagerID != claims.Subject {
		return "", "", errors.Wrap(ErrInvalidToken, "manager no identificado")
	}
	return claims.ManagerID, claims.Role, nil
}
