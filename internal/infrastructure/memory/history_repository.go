package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var historyAccessor = accessor[*entity.ProductChangeHistory]{
	fields: fieldSet([]string{
		"id",
		repository.HistoryFieldProductID,
		repository.HistoryFieldUpdatedBy,
		repository.HistoryFieldChangeType,
		repository.HistoryFieldCreatedAt,
		repository.HistoryFieldRecordedAt,
	}),
	get: func(h *entity.ProductChangeHistory, field string) any {
		switch field {
		case "id":
			return h.ID
		case repository.HistoryFieldProductID:
			return h.ProductID
		case repository.HistoryFieldUpdatedBy:
			return h.UpdatedBy
		case repository.HistoryFieldChangeType:
			return string(h.ChangeType)
		case repository.HistoryFieldCreatedAt:
			return h.CreatedAt
		case repository.HistoryFieldRecordedAt:
			return h.RecordedAt
		}
		return nil
	},
}

// HistoryRepository implementación en memoria de repository.ProductHistoryRepository.
type HistoryRepository struct {
	store *Store
	tx    *txState
}

func (r *HistoryRepository) Create(ctx context.Context, h *entity.ProductChangeHistory) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	c := cloneHistory(h)
	if r.tx != nil {
		r.store.mu.Lock()
		r.tx.history = append(r.tx.history, c)
		r.store.mu.Unlock()
		return nil
	}
	r.store.mu.Lock()
	r.store.history[c.ID] = c
	r.store.mu.Unlock()
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, filter repository.Filter, opts repository.PageOptions) (*repository.Page[*entity.ProductChangeHistory], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*entity.ProductChangeHistory, 0, len(r.store.history))
	for _, h := range r.store.history {
		all = append(all, h)
	}
	if r.tx != nil {
		all = append(all, r.tx.history...)
	}
	page, err := paginate(all, filter, opts, historyAccessor)
	if err != nil {
		return nil, err
	}
	pop, populate := opts.PopulateFor(repository.HistoryFieldUpdatedBy)
	return repository.MapPage(page, func(h *entity.ProductChangeHistory) *entity.ProductChangeHistory {
		c := cloneHistory(h)
		if populate {
			c.UpdatedByRef = r.store.managerRef(c.UpdatedBy, pop.Select)
		}
		return c
	}), nil
}

func cloneHistory(h *entity.ProductChangeHistory) *entity.ProductChangeHistory {
	c := *h
	c.PreviousState = *h.PreviousState.Clone()
	c.NewState = *h.NewState.Clone()
	if h.UpdatedByRef != nil {
		ref := *h.UpdatedByRef
		c.UpdatedByRef = &ref
	}
	return &c
}
