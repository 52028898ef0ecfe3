package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest un elemento del arreglo de POST /products.
type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required,min=2,max=100"`
	Description       string           `json:"description" validate:"required,min=10,max=500"`
	Price             *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Category          string           `json:"category" validate:"required"`
	AvailableQuantity *int             `json:"availableQuantity" validate:"required,gte=0,max=2147483647"`
	ImageURL          string           `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest actualización general. Status y AvailableQuantity solo existen para
// rechazarlos: tienen endpoints propios.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Description       *string          `json:"description" validate:"omitempty,min=10,max=500"`
	Price             *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Category          *string          `json:"category" validate:"omitempty,min=1"`
	ImageURL          *string          `json:"imageUrl" validate:"omitempty,url"`
	Note              string           `json:"note" validate:"max=500"`
	Status            *string          `json:"status"`
	AvailableQuantity *int             `json:"availableQuantity"`
}

// UpdateStatusRequest PUT /products/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE ARCHIVED active archived"`
	Note   string `json:"note" validate:"required,max=500"`
}

// DeleteProductRequest DELETE /products/:id (la nota es obligatoria).
type DeleteProductRequest struct {
	Note string `json:"note" validate:"required,max=500"`
}

// Modos de ajuste de cantidad.
const (
	QuantityModeSet    = "set"
	QuantityModeAdjust = "adjust"
)

// AdjustQuantityRequest PATCH /products/:id/quantity. set asigna el valor; adjust suma el delta (con signo).
type AdjustQuantityRequest struct {
	Mode  string `json:"mode" validate:"required,oneof=set adjust"`
	Value *int   `json:"value" validate:"required"`
	Note  string `json:"note" validate:"required,max=500"`
}

// ProductResponse salida de un producto con referencias pobladas.
type ProductResponse struct {
	ID                string              `json:"id"`
	Name              string              `json:"name,omitempty"`
	Description       string              `json:"description,omitempty"`
	Price             decimal.Decimal     `json:"price"`
	Category          string              `json:"category,omitempty"`
	AvailableQuantity int                 `json:"availableQuantity"`
	ImageURL          string              `json:"imageUrl,omitempty"`
	Status            string              `json:"status,omitempty"`
	CreatedBy         *ManagerRefResponse `json:"createdBy,omitempty"`
	LastUpdatedBy     *ManagerRefResponse `json:"lastUpdatedBy,omitempty"`
	CreatedAt         *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time          `json:"updatedAt,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items      []ProductResponse  `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// ProductStatsResponse GET /products/stats (solo admin). Promedios redondeados a 2 decimales.
type ProductStatsResponse struct {
	TotalProducts  int64                   `json:"totalProducts"`
	AvgPrice       decimal.Decimal         `json:"avgPrice"`
	MinPrice       decimal.Decimal         `json:"minPrice"`
	MaxPrice       decimal.Decimal         `json:"maxPrice"`
	TotalInventory int64                   `json:"totalInventory"`
	CategoryCounts []CategoryStatsResponse `json:"categoryCounts"`
}

// CategoryStatsResponse agregados de una categoría.
type CategoryStatsResponse struct {
	Category       string          `json:"category"`
	Count          int64           `json:"count"`
	AvgPrice       decimal.Decimal `json:"avgPrice"`
	TotalInventory int64           `json:"totalInventory"`
}
