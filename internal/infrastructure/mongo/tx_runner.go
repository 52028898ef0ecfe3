package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento.
// La sesión viaja en el ctx que recibe fn; los repositorios la usan de forma implícita.
type TxRunner struct {
	client   *mongo.Client
	products *ProductRepository
	history  *HistoryRepository
}

// Run abre sesión y transacción, ejecuta fn y hace Commit o Abort. Sin reintentos:
// un error transitorio se propaga igual que cualquier otro. La sesión se cierra siempre.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	historyRepo repository.ProductHistoryRepository,
) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "mongo: iniciar sesión")
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sess.StartTransaction(); err != nil {
			return errors.Wrap(err, "mongo: iniciar transacción")
		}
		if err := fn(sc, r.products, r.history); err != nil {
			_ = sess.AbortTransaction(context.WithoutCancel(sc))
			return err
		}
		if err := sess.CommitTransaction(sc); err != nil {
			_ = sess.AbortTransaction(context.WithoutCancel(sc))
			return errors.Wrap(err, "mongo: commit")
		}
		return nil
	})
}
