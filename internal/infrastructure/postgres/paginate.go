package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// listQuery partes de una consulta paginada; countSQL y selectSQL comparten where y args.
type listQuery struct {
	selectSQL string
	countSQL  string
	where     string
	orderBy   string
	args      args
}

// paginate motor de paginación: SELECT ... LIMIT/OFFSET para la página y COUNT(*) independiente
// con el mismo WHERE. Sobre el pool corren en paralelo; dentro de una tx, en secuencia.
func paginate[T any](
	ctx context.Context,
	q Querier,
	lq listQuery,
	opts repository.PageOptions,
	scan func(pgx.Row) (T, error),
) (*repository.Page[T], error) {
	var (
		items []T
		total int64
	)
	find := func(ctx context.Context) error {
		pageArgs := append(args{}, lq.args...)
		sql := lq.selectSQL + lq.where + lq.orderBy + pageClause(opts, &pageArgs)
		rows, err := q.Query(ctx, sql, pageArgs...)
		if err != nil {
			return errors.Wrap(err, "postgres: consultar página")
		}
		defer rows.Close()
		for rows.Next() {
			it, err := scan(rows)
			if err != nil {
				return errors.Wrap(err, "postgres: leer fila")
			}
			items = append(items, it)
		}
		return errors.Wrap(rows.Err(), "postgres: iterar página")
	}
	count := func(ctx context.Context) error {
		err := q.QueryRow(ctx, lq.countSQL+lq.where, lq.args...).Scan(&total)
		return errors.Wrap(err, "postgres: contar")
	}

	if _, isPool := q.(*pgxpool.Pool); !isPool {
		if err := find(ctx); err != nil {
			return nil, err
		}
		if err := count(ctx); err != nil {
			return nil, err
		}
		return repository.NewPage(items, total, opts), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return find(gctx) })
	g.Go(func() error { return count(gctx) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, opts), nil
}
