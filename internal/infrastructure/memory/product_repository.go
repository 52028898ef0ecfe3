package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var productAccessor = accessor[*entity.Product]{
	fields: fieldSet(repository.ProductFields),
	get: func(p *entity.Product, field string) any {
		switch field {
		case repository.ProductFieldID:
			return p.ID
		case repository.ProductFieldName:
			return p.Name
		case repository.ProductFieldDescription:
			return p.Description
		case repository.ProductFieldPrice:
			return p.Price
		case repository.ProductFieldCategory:
			return p.Category
		case repository.ProductFieldAvailableQuantity:
			return p.AvailableQuantity
		case repository.ProductFieldImageURL:
			return p.ImageURL
		case repository.ProductFieldStatus:
			return string(p.Status)
		case repository.ProductFieldCreatedBy:
			return p.CreatedBy
		case repository.ProductFieldLastUpdatedBy:
			return p.LastUpdatedBy
		case repository.ProductFieldCreatedAt:
			return p.CreatedAt
		case repository.ProductFieldUpdatedAt:
			return p.UpdatedAt
		}
		return nil
	},
}

// ProductRepository implementación en memoria de repository.ProductRepository.
// Con tx != nil lee a través del write-set y escribe solo en él.
type ProductRepository struct {
	store *Store
	tx    *txState
}

func (r *ProductRepository) CreateMany(ctx context.Context, products []*entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		stored := p.Clone()
		stored.Creator, stored.LastUpdater = nil, nil
		if r.tx != nil {
			r.tx.products[p.ID] = stored
			continue
		}
		r.store.products[p.ID] = stored
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p := r.lookupLocked(id)
	if p == nil {
		return nil, nil
	}
	return r.populateLocked(p.Clone(), repository.PageOptions{Populate: fullRefs()}), nil
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.lookupLocked(product.ID) == nil {
		return nil, nil
	}
	stored := product.Clone()
	stored.Creator, stored.LastUpdater = nil, nil
	if r.tx != nil {
		r.tx.products[product.ID] = stored
	} else {
		r.store.products[product.ID] = stored
	}
	return r.populateLocked(stored.Clone(), repository.PageOptions{Populate: fullRefs()}), nil
}

func (r *ProductRepository) List(ctx context.Context, filter repository.Filter, opts repository.PageOptions) (*repository.Page[*entity.Product], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	page, err := paginate(r.visibleLocked(), filter, opts, productAccessor)
	if err != nil {
		return nil, err
	}
	opts = opts.Normalized()
	return repository.MapPage(page, func(p *entity.Product) *entity.Product {
		return r.populateLocked(projectProduct(p.Clone(), opts), opts)
	}), nil
}

func (r *ProductRepository) Stats(ctx context.Context) (*entity.ProductStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	type acc struct {
		count, inventory int64
		priceSum         decimal.Decimal
	}
	var (
		stats  = &entity.ProductStats{}
		total  acc
		byCat  = map[string]*acc{}
		minMax bool
	)
	for _, p := range r.visibleLocked() {
		if p.Status == entity.ProductStatusDeleted {
			continue
		}
		total.count++
		total.inventory += int64(p.AvailableQuantity)
		total.priceSum = total.priceSum.Add(p.Price)
		if !minMax || p.Price.LessThan(stats.MinPrice) {
			stats.MinPrice = p.Price
		}
		if !minMax || p.Price.GreaterThan(stats.MaxPrice) {
			stats.MaxPrice = p.Price
		}
		minMax = true

		c, ok := byCat[p.Category]
		if !ok {
			c = &acc{}
			byCat[p.Category] = c
		}
		c.count++
		c.inventory += int64(p.AvailableQuantity)
		c.priceSum = c.priceSum.Add(p.Price)
	}
	if total.count == 0 {
		stats.Categories = []entity.CategoryStats{}
		return stats, nil
	}
	stats.TotalProducts = total.count
	stats.TotalInventory = total.inventory
	stats.AvgPrice = total.priceSum.Div(decimal.NewFromInt(total.count))

	stats.Categories = make([]entity.CategoryStats, 0, len(byCat))
	for name, c := range byCat {
		stats.Categories = append(stats.Categories, entity.CategoryStats{
			Category:       name,
			Count:          c.count,
			AvgPrice:       c.priceSum.Div(decimal.NewFromInt(c.count)),
			TotalInventory: c.inventory,
		})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	return stats, nil
}

// visibleLocked productos del store vistos a través del write-set de la tx, si la hay.
func (r *ProductRepository) visibleLocked() []*entity.Product {
	all := make([]*entity.Product, 0, len(r.store.products))
	for id := range r.store.products {
		all = append(all, r.lookupLocked(id))
	}
	if r.tx != nil {
		for id, p := range r.tx.products {
			if _, inBase := r.store.products[id]; !inBase {
				all = append(all, p)
			}
		}
	}
	return all
}

func (r *ProductRepository) lookupLocked(id string) *entity.Product {
	if r.tx != nil {
		if p, ok := r.tx.products[id]; ok {
			return p
		}
	}
	return r.store.products[id]
}

func (r *ProductRepository) populateLocked(p *entity.Product, opts repository.PageOptions) *entity.Product {
	if pop, ok := opts.PopulateFor(repository.ProductFieldCreatedBy); ok && p.CreatedBy != "" {
		p.Creator = r.store.managerRef(p.CreatedBy, pop.Select)
	}
	if pop, ok := opts.PopulateFor(repository.ProductFieldLastUpdatedBy); ok && p.LastUpdatedBy != "" {
		p.LastUpdater = r.store.managerRef(p.LastUpdatedBy, pop.Select)
	}
	return p
}

// projectProduct deja en cero los campos fuera de la proyección (id siempre se conserva).
func projectProduct(p *entity.Product, opts repository.PageOptions) *entity.Product {
	if !opts.Projected() {
		return p
	}
	out := &entity.Product{ID: p.ID}
	for _, f := range repository.ProductFields {
		if !opts.Includes(f) {
			continue
		}
		switch f {
		case repository.ProductFieldName:
			out.Name = p.Name
		case repository.ProductFieldDescription:
			out.Description = p.Description
		case repository.ProductFieldPrice:
			out.Price = p.Price
		case repository.ProductFieldCategory:
			out.Category = p.Category
		case repository.ProductFieldAvailableQuantity:
			out.AvailableQuantity = p.AvailableQuantity
		case repository.ProductFieldImageURL:
			out.ImageURL = p.ImageURL
		case repository.ProductFieldStatus:
			out.Status = p.Status
		case repository.ProductFieldCreatedBy:
			out.CreatedBy = p.CreatedBy
		case repository.ProductFieldLastUpdatedBy:
			out.LastUpdatedBy = p.LastUpdatedBy
		case repository.ProductFieldCreatedAt:
			out.CreatedAt = p.CreatedAt
		case repository.ProductFieldUpdatedAt:
			out.UpdatedAt = p.UpdatedAt
		}
	}
	return out
}

func fullRefs() []repository.Populate {
	return []repository.Populate{
		{Path: repository.ProductFieldCreatedBy, Select: entity.ManagerRefFields},
		{Path: repository.ProductFieldLastUpdatedBy, Select: entity.ManagerRefFields},
	}
}

func fieldSet(fields []string) map[string]bool {
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f] = true
	}
	return out
}
