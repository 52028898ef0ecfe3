package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// accessor lista blanca de campos lógicos de una colección y cómo leerlos.
type accessor[T any] struct {
	fields map[string]bool
	get    func(item T, field string) any
}

func (a accessor[T]) check(field, kind string) error {
	if !a.fields[field] {
		return errors.Wrapf(domain.ErrInvalidInput, "memory: campo de %s no soportado %q", kind, field)
	}
	return nil
}

// paginate motor de paginación en memoria: filtra, ordena (con id como desempate), cuenta y corta.
func paginate[T any](items []T, filter repository.Filter, opts repository.PageOptions, acc accessor[T]) (*repository.Page[T], error) {
	opts = opts.Normalized()
	for _, c := range filter {
		if err := acc.check(c.Field, "filtro"); err != nil {
			return nil, err
		}
	}
	for _, s := range opts.Sort {
		if err := acc.check(s.Field, "orden"); err != nil {
			return nil, err
		}
	}
	matched := make([]T, 0, len(items))
	for _, it := range items {
		ok, err := matches(it, filter, acc)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, it)
		}
	}
	sortBy := append(append([]repository.SortField{}, opts.Sort...), repository.SortField{Field: "id"})
	sort.SliceStable(matched, func(i, j int) bool {
		for _, s := range sortBy {
			c := compare(acc.get(matched[i], s.Field), acc.get(matched[j], s.Field))
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	total := int64(len(matched))
	start := opts.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return repository.NewPage(matched[start:end], total, opts), nil
}

func matches[T any](item T, filter repository.Filter, acc accessor[T]) (bool, error) {
	for _, c := range filter {
		v := acc.get(item, c.Field)
		switch c.Op {
		case repository.OpEq:
			if compare(v, c.Value) != 0 {
				return false, nil
			}
		case repository.OpContains:
			if !strings.Contains(strings.ToLower(cast.ToString(v)), strings.ToLower(cast.ToString(c.Value))) {
				return false, nil
			}
		case repository.OpGte:
			if compare(v, c.Value) < 0 {
				return false, nil
			}
		case repository.OpLte:
			if compare(v, c.Value) > 0 {
				return false, nil
			}
		default:
			return false, errors.Wrapf(domain.ErrInvalidInput, "memory: operador %q", c.Op)
		}
	}
	return true, nil
}

// compare ordena según el tipo del valor almacenado a; b se convierte a ese tipo.
func compare(a, b any) int {
	switch av := a.(type) {
	case decimal.Decimal:
		bv, err := toDecimal(b)
		if err != nil {
			return -1
		}
		return av.Cmp(bv)
	case int:
		bv, err := cast.ToIntE(b)
		if err != nil {
			return -1
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case time.Time:
		bv, err := cast.ToTimeE(b)
		if err != nil {
			return -1
		}
		return av.Compare(bv)
	default:
		return strings.Compare(cast.ToString(a), cast.ToString(b))
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		return *x, nil
	case string:
		return decimal.NewFromString(x)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(f), nil
}
