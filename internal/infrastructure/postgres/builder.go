package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

type colKind int

const (
	colText colKind = iota
	colUUID
	colNumeric
	colInt
	colTime
)

// sqlField expresión SQL y tipo de un campo lógico filtrable u ordenable.
type sqlField struct {
	expr string
	kind colKind
}

var productSQLFields = map[string]sqlField{
	repository.ProductFieldID:                {"p.id", colUUID},
	repository.ProductFieldName:              {"p.name", colText},
	repository.ProductFieldDescription:       {"p.description", colText},
	repository.ProductFieldPrice:             {"p.price", colNumeric},
	repository.ProductFieldCategory:          {"p.category", colText},
	repository.ProductFieldAvailableQuantity: {"p.available_quantity", colInt},
	repository.ProductFieldImageURL:          {"p.image_url", colText},
	repository.ProductFieldStatus:            {"p.status", colText},
	repository.ProductFieldCreatedBy:         {"p.created_by", colUUID},
	repository.ProductFieldLastUpdatedBy:     {"p.last_updated_by", colUUID},
	repository.ProductFieldCreatedAt:         {"p.created_at", colTime},
	repository.ProductFieldUpdatedAt:         {"p.updated_at", colTime},
}

var historySQLFields = map[string]sqlField{
	"id":                              {"h.id", colUUID},
	repository.HistoryFieldProductID:  {"h.product_id", colUUID},
	repository.HistoryFieldUpdatedBy:  {"h.updated_by", colUUID},
	repository.HistoryFieldChangeType: {"h.change_type", colText},
	repository.HistoryFieldCreatedAt:  {"h.created_at", colTime},
	repository.HistoryFieldRecordedAt: {"h.recorded_at", colTime},
}

// managerRefColumns columnas publicables de managers para populate.
var managerRefColumns = map[string]string{
	"firstname": "firstname",
	"lastname":  "lastname",
	"email":     "email",
}

// args acumula parámetros posicionales ($1, $2...).
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

func errUnknownField(kind, field string) error {
	return errors.Wrapf(domain.ErrInvalidInput, "postgres: campo de %s no soportado %q", kind, field)
}

// buildWhere traduce el filtro a una cláusula WHERE ("" si no hay condiciones).
func buildWhere(filter repository.Filter, fields map[string]sqlField, a *args) (string, error) {
	if len(filter) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(filter))
	for _, c := range filter {
		f, ok := fields[c.Field]
		if !ok {
			return "", errUnknownField("filtro", c.Field)
		}
		if c.Op == repository.OpContains {
			if f.kind != colText {
				return "", errors.Wrapf(domain.ErrInvalidInput, "postgres: contains sobre campo no textual %q", c.Field)
			}
			parts = append(parts, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, f.expr, a.add("%"+escapeLike(cast.ToString(c.Value))+"%")))
			continue
		}
		var op string
		switch c.Op {
		case repository.OpEq:
			op = "="
		case repository.OpGte:
			op = ">="
		case repository.OpLte:
			op = "<="
		default:
			return "", errors.Wrapf(domain.ErrInvalidInput, "postgres: operador %q", c.Op)
		}
		v, err := convertValue(c.Value, f.kind)
		if err != nil {
			return "", errors.Wrapf(domain.ErrInvalidInput, "postgres: valor de %s: %v", c.Field, err)
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", f.expr, op, a.add(v)))
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func convertValue(v any, kind colKind) (any, error) {
	switch kind {
	case colUUID:
		return uuid.Parse(cast.ToString(v))
	case colNumeric:
		if d, ok := v.(decimal.Decimal); ok {
			return d, nil
		}
		return decimal.NewFromString(cast.ToString(v))
	case colInt:
		return cast.ToIntE(v)
	case colTime:
		return cast.ToTimeE(v)
	default:
		return cast.ToStringE(v)
	}
}

// buildOrderBy orden pedido con la clave primaria como desempate.
func buildOrderBy(sortBy []repository.SortField, fields map[string]sqlField, pk string) (string, error) {
	parts := make([]string, 0, len(sortBy)+1)
	hasPK := false
	for _, s := range sortBy {
		f, ok := fields[s.Field]
		if !ok {
			return "", errUnknownField("orden", s.Field)
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, f.expr+" "+dir)
		hasPK = hasPK || f.expr == pk
	}
	if !hasPK {
		parts = append(parts, pk+" ASC")
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// refRow columnas de un manager unido por LEFT JOIN (NULL si la referencia no existe).
type refRow struct {
	id, firstname, lastname, email *string
}

func (r *refRow) toEntity() *entity.ManagerRef {
	if r.id == nil {
		return nil
	}
	ref := &entity.ManagerRef{ID: *r.id}
	if r.firstname != nil {
		ref.Firstname = *r.firstname
	}
	if r.lastname != nil {
		ref.Lastname = *r.lastname
	}
	if r.email != nil {
		ref.Email = *r.email
	}
	return ref
}

// refColumn expresión y destino de scan de una columna de manager.
type refColumn struct {
	expr string
	dest func(*refRow) any
}

// refColumns columnas de un manager unido con alias; id siempre se incluye.
func refColumns(alias string, selectFields []string) ([]refColumn, error) {
	cols := []refColumn{{alias + ".id::text", func(r *refRow) any { return &r.id }}}
	for _, f := range selectFields {
		if f == "id" {
			continue
		}
		col, ok := managerRefColumns[f]
		if !ok {
			return nil, errUnknownField("populate", f)
		}
		var dest func(*refRow) any
		switch col {
		case "firstname":
			dest = func(r *refRow) any { return &r.firstname }
		case "lastname":
			dest = func(r *refRow) any { return &r.lastname }
		default:
			dest = func(r *refRow) any { return &r.email }
		}
		cols = append(cols, refColumn{alias + "." + col, dest})
	}
	return cols, nil
}

// pageClause LIMIT/OFFSET parametrizados.
func pageClause(opts repository.PageOptions, a *args) string {
	return fmt.Sprintf(" LIMIT %s OFFSET %s", a.add(opts.Limit), a.add(opts.Offset()))
}

func joinExprs(exprs []string) string {
	return strings.Join(exprs, ", ")
}
