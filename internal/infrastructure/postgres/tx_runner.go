package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.ProductHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "postgres: iniciar transacción")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewProductRepository(tx), NewHistoryRepository(tx)); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(ctx), "postgres: confirmar transacción")
}
