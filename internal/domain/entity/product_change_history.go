package entity

import "time"

// ProductChangeType clasifica el cambio registrado en el historial.
type ProductChangeType string

const (
	ChangeTypeStatus   ProductChangeType = "STATUS_CHANGE"
	ChangeTypeQuantity ProductChangeType = "QUANTITY_CHANGE"
	ChangeTypeOther    ProductChangeType = "OTHER_UPDATE"
)

// ProductChangeHistory registro inmutable de auditoría: estado anterior y nuevo de un producto.
// CreatedAt toma el CreatedAt del producto original (no "ahora") para mantener la línea de tiempo
// ligada a la vida del producto; RecordedAt guarda el instante real de la escritura.
type ProductChangeHistory struct {
	ID            string
	ProductID     string
	PreviousState Product
	NewState      Product
	ChangeType    ProductChangeType
	Notes         string
	UpdatedBy     string
	UpdatedByRef  *ManagerRef // poblado en lecturas
	CreatedAt     time.Time
	RecordedAt    time.Time
}
