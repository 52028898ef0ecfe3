package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// paginate motor de paginación: la página sale de un aggregate y el total de un
// CountDocuments independiente sobre el mismo $match. Fuera de una sesión ambas lecturas
// corren en paralelo; no son consistentes entre sí si hay escrituras concurrentes.
func paginate[D any, T any](
	ctx context.Context,
	coll *mongo.Collection,
	match bson.D,
	pipeline mongo.Pipeline,
	opts repository.PageOptions,
	decode func(*D) (T, error),
) (*repository.Page[T], error) {
	var (
		items []T
		total int64
	)
	find := func(ctx context.Context) error {
		cur, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return errors.Wrapf(err, "mongo: aggregate %s", coll.Name())
		}
		var docs []D
		if err := cur.All(ctx, &docs); err != nil {
			return errors.Wrapf(err, "mongo: leer %s", coll.Name())
		}
		items = make([]T, 0, len(docs))
		for i := range docs {
			it, err := decode(&docs[i])
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		return nil
	}
	count := func(ctx context.Context) error {
		n, err := coll.CountDocuments(ctx, match)
		if err != nil {
			return errors.Wrapf(err, "mongo: contar %s", coll.Name())
		}
		total = n
		return nil
	}

	// una sesión (transacción) no admite operaciones concurrentes
	if mongo.SessionFromContext(ctx) != nil {
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
