package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/jhoicas/catalog-api/pkg/config"
)

// Store agrupa el pool y los adaptadores PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open crea el pool y aplica las migraciones embebidas.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "postgres: migrar")
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() { s.pool.Close() }

func (s *Store) Managers() *ManagerRepo { return NewManagerRepository(s.pool) }

func (s *Store) Products() *ProductRepo { return NewProductRepository(s.pool) }

func (s *Store) History() *HistoryRepo { return NewHistoryRepository(s.pool) }

func (s *Store) TxRunner() *TxRunner { return NewTxRunner(s.pool) }
