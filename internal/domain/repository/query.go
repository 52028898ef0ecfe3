package repository

import (
	"math"
	"slices"
)

// Operator operadores de filtro soportados por todos los adaptadores.
type Operator string

const (
	OpEq       Operator = "eq"       // igualdad exacta
	OpContains Operator = "contains" // subcadena, sin distinguir mayúsculas (el valor se escapa, no es regex)
	OpGte      Operator = "gte"      // cota inferior inclusiva
	OpLte      Operator = "lte"      // cota superior inclusiva
)

// Condition predicado sobre un campo lógico (nombres de la API, no del almacenamiento).
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Filter conjunción (AND) de condiciones. Los adaptadores rechazan campos fuera de su lista blanca.
type Filter []Condition

// Eq, Contains, Gte y Lte agregan condiciones y devuelven el filtro para encadenar.
func (f Filter) Eq(field string, v any) Filter { return append(f, Condition{field, OpEq, v}) }
func (f Filter) Contains(field string, v any) Filter {
	return append(f, Condition{field, OpContains, v})
}
func (f Filter) Gte(field string, v any) Filter { return append(f, Condition{field, OpGte, v}) }
func (f Filter) Lte(field string, v any) Filter { return append(f, Condition{field, OpLte, v}) }

// SortField orden por un campo lógico.
type SortField struct {
	Field string
	Desc  bool
}

// Populate referencia a resolver (p. ej. createdBy -> Manager) con un subconjunto de campos.
type Populate struct {
	Path   string
	Select []string
}

// Valores por defecto de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageOptions opciones del motor de paginación.
type PageOptions struct {
	Page     int
	Limit    int
	Sort     []SortField
	Fields   []string // proyección por inclusión: solo estos campos (vacío = todos)
	Exclude  []string // proyección por exclusión: todos menos estos; se aplica también sobre Fields
	Populate []Populate
}

// Normalized aplica defaults: page>=1, 1<=limit<=MaxLimit, orden por createdAt desc.
func (o PageOptions) Normalized() PageOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if len(o.Sort) == 0 {
		o.Sort = []SortField{{Field: "createdAt", Desc: true}}
	}
	return o
}

// Offset (page-1)*limit.
func (o PageOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Projected indica si hay proyección de algún tipo.
func (o PageOptions) Projected() bool {
	return len(o.Fields) > 0 || len(o.Exclude) > 0
}

// Includes indica si la proyección conserva el campo.
func (o PageOptions) Includes(field string) bool {
	if slices.Contains(o.Exclude, field) {
		return false
	}
	return len(o.Fields) == 0 || slices.Contains(o.Fields, field)
}

// PopulateFor busca la opción de populate de un path.
func (o PageOptions) PopulateFor(path string) (Populate, bool) {
	for _, p := range o.Populate {
		if p.Path == path {
			return p, true
		}
	}
	return Populate{}, false
}

// Page resultado paginado. TotalMatching proviene de un conteo independiente del slice:
// con escrituras concurrentes ambos valores pueden no ser consistentes entre sí.
type Page[T any] struct {
	Items         []T
	TotalMatching int64
	Limit         int
	Page          int
	TotalPages    int
}

// NewPage arma el resultado calculando TotalPages = ceil(total/limit).
func NewPage[T any](items []T, total int64, opts PageOptions) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:         items,
		TotalMatching: total,
		Limit:         opts.Limit,
		Page:          opts.Page,
		TotalPages:    TotalPages(total, opts.Limit),
	}
}

// TotalPages ceil(total/limit); 0 si no hay resultados.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// HasNextPage page < totalPages.
func (p *Page[T]) HasNextPage() bool { return p.Page < p.TotalPages }

// HasPrevPage page > 1.
func (p *Page[T]) HasPrevPage() bool { return p.Page > 1 }

// MapPage convierte los ítems conservando los metadatos.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return &Page[U]{Items: out, TotalMatching: p.TotalMatching, Limit: p.Limit, Page: p.Page, TotalPages: p.TotalPages}
}
