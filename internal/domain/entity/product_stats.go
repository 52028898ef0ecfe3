package entity

import "github.com/shopspring/decimal"

// ProductStats agregados sobre los productos no eliminados.
type ProductStats struct {
	TotalProducts  int64
	AvgPrice       decimal.Decimal
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
	TotalInventory int64
	// Categories de mayor a menor Count; empates por nombre.
	Categories []CategoryStats
}

// CategoryStats agregados de una categoría.
type CategoryStats struct {
	Category       string
	Count          int64
	AvgPrice       decimal.Decimal
	TotalInventory int64
}
