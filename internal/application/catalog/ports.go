package catalog

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del almacén, pasando repositorios atados a ella.
// fn debe usar el ctx recibido: en algunos adaptadores la transacción viaja en el contexto.
// Si fn devuelve error se aborta y el error se propaga sin cambios; la sesión se libera siempre.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		productRepo repository.ProductRepository,
		historyRepo repository.ProductHistoryRepository,
	) error) error
}

// Actor manager que ejecuta la operación (tomado del token).
type Actor struct {
	ID   string
	Role string
}
