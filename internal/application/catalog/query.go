package catalog

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// Parámetros de control (no son filtros).
const (
	paramPage     = "page"
	paramLimit    = "limit"
	paramSort     = "sort"
	paramOrder    = "order"
	paramSummary  = "summary"
	paramFields   = "fields"
	paramName     = "name"
	paramCategory = "category"
	paramPrice    = "price"
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
	paramStatus   = "status"
)

// passthroughFields campos que se aceptan como igualdad exacta. Cualquier otra clave se rechaza.
var passthroughFields = map[string]bool{
	repository.ProductFieldDescription:       true,
	repository.ProductFieldImageURL:          true,
	repository.ProductFieldAvailableQuantity: true,
	repository.ProductFieldCreatedBy:         true,
	repository.ProductFieldLastUpdatedBy:     true,
}

var sortableFields = map[string]bool{
	repository.ProductFieldName:              true,
	repository.ProductFieldPrice:             true,
	repository.ProductFieldCategory:          true,
	repository.ProductFieldAvailableQuantity: true,
	repository.ProductFieldStatus:            true,
	repository.ProductFieldCreatedAt:         true,
	repository.ProductFieldUpdatedAt:         true,
}

// summaryFields proyección de summary=true.
var summaryFields = []string{
	repository.ProductFieldID,
	repository.ProductFieldName,
	repository.ProductFieldPrice,
	repository.ProductFieldCategory,
	repository.ProductFieldAvailableQuantity,
	repository.ProductFieldStatus,
}

// productPopulate referencias que siempre se resuelven en lecturas de productos.
var productPopulate = []repository.Populate{
	{Path: repository.ProductFieldCreatedBy, Select: entity.ManagerRefFields},
	{Path: repository.ProductFieldLastUpdatedBy, Select: entity.ManagerRefFields},
}

// BuildProductQuery traduce los query params de GET /products a filtro + opciones de página.
//
// name y category: subcadena sin distinguir mayúsculas. price exacto anula minPrice/maxPrice.
// status por defecto ACTIVE. fields proyecta ("name,price" incluye, "-description" excluye) y
// no se combina con summary. Errores de formato se acumulan en un único ValidationError.
func BuildProductQuery(params map[string]string) (repository.Filter, repository.PageOptions, error) {
	var (
		filter repository.Filter
		opts   = repository.PageOptions{Populate: productPopulate}
		verr   = &domain.ValidationError{}
	)

	// orden determinista de claves para que los mensajes de error sean estables
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	status := entity.ProductStatusActive
	var (
		price, minPrice, maxPrice *decimal.Decimal
		sortField, order          string
	)
	for _, key := range keys {
		raw := strings.TrimSpace(params[key])
		if raw == "" {
			continue
		}
		switch key {
		case paramPage:
			n, err := cast.ToIntE(raw)
			if err != nil || n < 1 {
				verr.Add(key, "page debe ser un entero mayor o igual a 1")
				continue
			}
			opts.Page = n
		case paramLimit:
			n, err := cast.ToIntE(raw)
			if err != nil || n < 1 {
				verr.Add(key, "limit debe ser un entero mayor o igual a 1")
				continue
			}
			opts.Limit = n
		case paramSort:
			if !sortableFields[raw] {
				verr.Add(key, "sort no admite el campo "+raw)
				continue
			}
			sortField = raw
		case paramOrder:
			order = strings.ToLower(raw)
			if order != "asc" && order != "desc" {
				verr.Add(key, "order debe ser asc o desc")
			}
		case paramSummary:
			b, err := cast.ToBoolE(raw)
			if err != nil {
				verr.Add(key, "summary debe ser true o false")
				continue
			}
			if b {
				if opts.Projected() {
					verr.Add(key, "summary y fields no se pueden combinar")
					continue
				}
				opts.Fields = summaryFields
			}
		case paramFields:
			include, exclude, msg := parseProjection(raw)
			if msg != "" {
				verr.Add(key, msg)
				continue
			}
			opts.Fields, opts.Exclude = include, exclude
		case paramName, paramCategory:
			filter = filter.Contains(key, raw)
		case paramPrice, paramMinPrice, paramMaxPrice:
			d, err := decimal.NewFromString(raw)
			if err != nil || d.IsNegative() {
				verr.Add(key, key+" debe ser un número mayor o igual a 0")
				continue
			}
			switch key {
			case paramPrice:
				price = &d
			case paramMinPrice:
				minPrice = &d
			default:
				maxPrice = &d
			}
		case paramStatus:
			st, ok := entity.ParseProductStatus(raw)
			if !ok {
				verr.Add(key, "status debe ser ACTIVE, ARCHIVED o DELETED")
				continue
			}
			status = st
		default:
			if !passthroughFields[key] {
				verr.Add(key, "filtro no soportado: "+key)
				continue
			}
			if key == repository.ProductFieldAvailableQuantity {
				n, err := cast.ToIntE(raw)
				if err != nil {
					verr.Add(key, "availableQuantity debe ser un entero")
					continue
				}
				filter = filter.Eq(key, n)
				continue
			}
			filter = filter.Eq(key, raw)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, repository.PageOptions{}, err
	}

	switch {
	case price != nil:
		filter = filter.Eq(repository.ProductFieldPrice, *price)
	default:
		if minPrice != nil {
			filter = filter.Gte(repository.ProductFieldPrice, *minPrice)
		}
		if maxPrice != nil {
			filter = filter.Lte(repository.ProductFieldPrice, *maxPrice)
		}
	}
	filter = filter.Eq(repository.ProductFieldStatus, string(status))

	if sortField != "" {
		opts.Sort = []repository.SortField{{Field: sortField, Desc: order == "desc"}}
	}
	return filter, opts.Normalized(), nil
}

// parseProjection lista separada por comas; un "-" delante excluye el campo.
// Inclusión y exclusión no se mezclan e id no se puede excluir.
func parseProjection(raw string) (include, exclude []string, msg string) {
	for _, part := range strings.Split(raw, ",") {
		field := strings.TrimSpace(part)
		if field == "" {
			continue
		}
		excluded := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if !slices.Contains(repository.ProductFields, field) {
			return nil, nil, "fields no admite el campo " + field
		}
		if !excluded {
			include = append(include, field)
			continue
		}
		if field == repository.ProductFieldID {
			return nil, nil, "fields no puede excluir id"
		}
		exclude = append(exclude, field)
	}
	if len(include) > 0 && len(exclude) > 0 {
		return nil, nil, "fields no puede mezclar inclusión y exclusión"
	}
	return include, exclude, ""
}
