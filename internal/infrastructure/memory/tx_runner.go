package memory

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// txState write-set de una transacción. Lo protege el lock del store.
type txState struct {
	products map[string]*entity.Product
	history  []*entity.ProductChangeHistory
}

// TxRunner implementa catalog.TxRunner en memoria.
type TxRunner struct {
	store *Store
}

// Run ejecuta fn con repositorios atados a un write-set nuevo. Si fn devuelve error el
// write-set se descarta; si no, se aplica completo bajo el lock (la última transacción gana).
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.ProductHistoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txState{products: make(map[string]*entity.Product)}
	if err := fn(ctx, &ProductRepository{store: r.store, tx: tx}, &HistoryRepository{store: r.store, tx: tx}); err != nil {
		return err
	}
	return r.commit(tx)
}

func (r *TxRunner) commit(tx *txState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, p := range tx.products {
		r.store.products[id] = p
	}
	for _, h := range tx.history {
		r.store.history[h.ID] = h
	}
	return nil
}
