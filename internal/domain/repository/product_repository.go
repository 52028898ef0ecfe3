package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Campos lógicos filtrables/ordenables de Product (lista blanca compartida por los adaptadores).
const (
	ProductFieldID                = "id"
	ProductFieldName              = "name"
	ProductFieldDescription       = "description"
	ProductFieldPrice             = "price"
	ProductFieldCategory          = "category"
	ProductFieldAvailableQuantity = "availableQuantity"
	ProductFieldImageURL          = "imageUrl"
	ProductFieldStatus            = "status"
	ProductFieldCreatedBy         = "createdBy"
	ProductFieldLastUpdatedBy     = "lastUpdatedBy"
	ProductFieldCreatedAt         = "createdAt"
	ProductFieldUpdatedAt         = "updatedAt"
)

// ProductFields todos los campos lógicos de Product.
var ProductFields = []string{
	ProductFieldID, ProductFieldName, ProductFieldDescription, ProductFieldPrice, ProductFieldCategory,
	ProductFieldAvailableQuantity, ProductFieldImageURL, ProductFieldStatus, ProductFieldCreatedBy,
	ProductFieldLastUpdatedBy, ProductFieldCreatedAt, ProductFieldUpdatedAt,
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Usado con el contexto de una transacción, las operaciones participan en ella.
type ProductRepository interface {
	// CreateMany inserta un lote; asigna ID a cada producto.
	CreateMany(ctx context.Context, products []*entity.Product) error
	// GetByID devuelve el producto con createdBy/lastUpdatedBy poblados, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update escribe los campos mutables de product y devuelve el nuevo estado poblado,
	// o (nil, nil) si el producto ya no existe.
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	// List motor de paginación sobre la colección de productos.
	List(ctx context.Context, filter Filter, opts PageOptions) (*Page[*entity.Product], error)
	// Stats totales y agregados por categoría; los productos DELETED no cuentan.
	Stats(ctx context.Context) (*entity.ProductStats, error)
}
