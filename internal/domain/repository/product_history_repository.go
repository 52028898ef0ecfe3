package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Campos lógicos filtrables del historial.
const (
	HistoryFieldProductID  = "productId"
	HistoryFieldUpdatedBy  = "updatedBy"
	HistoryFieldChangeType = "changeType"
	HistoryFieldCreatedAt  = "createdAt"
	HistoryFieldRecordedAt = "recordedAt"
)

// ProductHistoryRepository puerto de persistencia del historial de cambios (solo inserción y lectura).
type ProductHistoryRepository interface {
	Create(ctx context.Context, history *entity.ProductChangeHistory) error
	// List devuelve registros con updatedBy poblado.
	List(ctx context.Context, filter Filter, opts PageOptions) (*Page[*entity.ProductChangeHistory], error)
}
