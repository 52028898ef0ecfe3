package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
)

type sample struct {
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"strongpassword"`
	Price    *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock    int              `query:"stock" validate:"gte=0"`
}

func TestStruct_TraduceErroresConNombreJSON(t *testing.T) {
	v := New()
	neg := decimal.NewFromFloat(-0.5)

	err := v.Struct(sample{Email: "no-email", Password: "Valida#123", Price: &neg, Stock: -1})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "stock")
	assert.NotContains(t, fields, "password")
}

func TestStruct_PrecioCeroEsValido(t *testing.T) {
	zero := decimal.Zero
	assert.NoError(t, New().Struct(sample{Email: "a@b.co", Password: "Valida#123", Price: &zero}))
}

func TestStrongPassword(t *testing.T) {
	v := New()
	cases := map[string]bool{
		"Valida#123": true,
		"Ñandú_2024": true,
		"corta#1A":   true,
		"Corta#1":    false,
		"sinmayus#1": false,
		"SinDigito#": false,
		"SinEspec1a": false,
	}
	for pw, ok := range cases {
		err := v.Var("password", pw, "strongpassword")
		if ok {
			assert.NoError(t, err, pw)
			continue
		}
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, pw)
		assert.Equal(t, "password", verr.Fields[0].Field)
	}
}
