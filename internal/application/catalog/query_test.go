package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

func condition(t *testing.T, f repository.Filter, field string, op repository.Operator) repository.Condition {
	t.Helper()
	for _, c := range f {
		if c.Field == field && c.Op == op {
			return c
		}
	}
	t.Fatalf("no se encontró la condición %s %s en %+v", field, op, f)
	return repository.Condition{}
}

func hasCondition(f repository.Filter, field string) bool {
	for _, c := range f {
		if c.Field == field {
			return true
		}
	}
	return false
}

func TestBuildProductQuery_SinParametrosSoloActivos(t *testing.T) {
	f, opts, err := BuildProductQuery(map[string]string{})
	require.NoError(t, err)

	require.Len(t, f, 1)
	assert.Equal(t, "ACTIVE", condition(t, f, "status", repository.OpEq).Value)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, []repository.SortField{{Field: "createdAt", Desc: true}}, opts.Sort)
	require.Len(t, opts.Populate, 2)
	assert.Equal(t, "createdBy", opts.Populate[0].Path)
	assert.NotContains(t, opts.Populate[0].Select, "password")
}

func TestBuildProductQuery_RangoDePrecio(t *testing.T) {
	f, _, err := BuildProductQuery(map[string]string{"minPrice": "5", "maxPrice": "20"})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(5).Equal(condition(t, f, "price", repository.OpGte).Value.(decimal.Decimal)))
	assert.True(t, decimal.NewFromInt(20).Equal(condition(t, f, "price", repository.OpLte).Value.(decimal.Decimal)))
}

func TestBuildProductQuery_PrecioExactoAnulaRango(t *testing.T) {
	f, _, err := BuildProductQuery(map[string]string{"price": "10.5", "minPrice": "5", "maxPrice": "20"})
	require.NoError(t, err)

	eq := condition(t, f, "price", repository.OpEq)
	assert.Equal(t, "10.5", eq.Value.(decimal.Decimal).String())
	for _, c := range f {
		if c.Field == "price" {
			assert.Equal(t, repository.OpEq, c.Op, "minPrice/maxPrice se ignoran cuando hay price")
		}
	}
}

func TestBuildProductQuery_NombreYCategoriaPorSubcadena(t *testing.T) {
	f, _, err := BuildProductQuery(map[string]string{"name": "Wid", "category": "tools"})
	require.NoError(t, err)

	assert.Equal(t, "Wid", condition(t, f, "name", repository.OpContains).Value)
	assert.Equal(t, "tools", condition(t, f, "category", repository.OpContains).Value)
}

func TestBuildProductQuery_StatusExplicitoSinDistinguirMayusculas(t *testing.T) {
	f, _, err := BuildProductQuery(map[string]string{"status": "archived"})
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVED", condition(t, f, "status", repository.OpEq).Value)
}

func TestBuildProductQuery_PassthroughPermitido(t *testing.T) {
	f, _, err := BuildProductQuery(map[string]string{"availableQuantity": "7", "createdBy": "m-1"})
	require.NoError(t, err)

	assert.Equal(t, 7, condition(t, f, "availableQuantity", repository.OpEq).Value)
	assert.Equal(t, "m-1", condition(t, f, "createdBy", repository.OpEq).Value)
}

func TestBuildProductQuery_ClaveDesconocidaRechazada(t *testing.T) {
	_, _, err := BuildProductQuery(map[string]string{"$where": "1", "password": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestBuildProductQuery_OrdenYPagina(t *testing.T) {
	f, opts, err := BuildProductQuery(map[string]string{"sort": "price", "page": "3", "limit": "500"})
	require.NoError(t, err)

	assert.False(t, hasCondition(f, "sort"))
	assert.Equal(t, []repository.SortField{{Field: "price", Desc: false}}, opts.Sort, "con sort el orden por defecto es asc")
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, repository.MaxLimit, opts.Limit)

	_, opts, err = BuildProductQuery(map[string]string{"sort": "name", "order": "DESC"})
	require.NoError(t, err)
	assert.True(t, opts.Sort[0].Desc)
}

func TestBuildProductQuery_Summary(t *testing.T) {
	_, opts, err := BuildProductQuery(map[string]string{"summary": "true"})
	require.NoError(t, err)
	assert.Equal(t, summaryFields, opts.Fields)
}

func TestBuildProductQuery_FieldsInclusionYExclusion(t *testing.T) {
	_, opts, err := BuildProductQuery(map[string]string{"fields": "name, price"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "price"}, opts.Fields)
	assert.Empty(t, opts.Exclude)

	_, opts, err = BuildProductQuery(map[string]string{"fields": "-description,-imageUrl"})
	require.NoError(t, err)
	assert.Empty(t, opts.Fields)
	assert.Equal(t, []string{"description", "imageUrl"}, opts.Exclude)
	assert.False(t, opts.Includes("description"))
	assert.True(t, opts.Includes("name"))
}

func TestParseProjection_Rechazos(t *testing.T) {
	for _, raw := range []string{"password", "-id", "name,-price", "-name,price"} {
		_, _, msg := parseProjection(raw)
		assert.NotEmpty(t, msg, raw)
	}
}

func TestBuildProductQuery_ValoresInvalidos(t *testing.T) {
	cases := map[string]map[string]string{
		"fields":   {"fields": "name,-price"},
		"summary":  {"fields": "name", "summary": "true"},
		"page":     {"page": "cero"},
		"limit":    {"limit": "0"},
		"sort":     {"sort": "password"},
		"order":    {"order": "up"},
		"minPrice": {"minPrice": "-1"},
		"price":    {"price": "abc"},
		"status":   {"status": "BORRADO"},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := BuildProductQuery(params)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, name, verr.Fields[0].Field)
		})
	}
}
