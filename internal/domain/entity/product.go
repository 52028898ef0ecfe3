package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProductStatus ciclo de vida de un producto. DELETED es terminal (borrado lógico).
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"   // se puede abastecer y vender
	ProductStatusArchived ProductStatus = "ARCHIVED" // fuera de venta, recuperable
	ProductStatusDeleted  ProductStatus = "DELETED"  // excluido de listados por defecto
)

// ParseProductStatus acepta mayúsculas o minúsculas.
func ParseProductStatus(s string) (ProductStatus, bool) {
	st := ProductStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case ProductStatusActive, ProductStatusArchived, ProductStatusDeleted:
		return st, true
	}
	return "", false
}

// CanTransitionTo valida el cambio de estado. Repetir el mismo estado se permite (queda auditado).
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ProductStatusActive:
		return next == ProductStatusArchived || next == ProductStatusDeleted
	case ProductStatusArchived:
		return next == ProductStatusActive || next == ProductStatusDeleted
	default:
		return false
	}
}

// Product representa un ítem del catálogo.
// Price y AvailableQuantity nunca son negativos, en ningún estado.
type Product struct {
	ID                string
	Name              string
	Description       string
	Price             decimal.Decimal
	Category          string
	AvailableQuantity int
	ImageURL          string
	Status            ProductStatus
	CreatedBy         string
	LastUpdatedBy     string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Referencias pobladas en lecturas (nil si no se resolvieron).
	Creator     *ManagerRef
	LastUpdater *ManagerRef
}

// Clone copia el producto, incluidas las referencias pobladas.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.Creator != nil {
		ref := *p.Creator
		c.Creator = &ref
	}
	if p.LastUpdater != nil {
		ref := *p.LastUpdater
		c.LastUpdater = &ref
	}
	return &c
}

// CanBeModifiedBy regla de autorización: admin o creador del producto.
func (p *Product) CanBeModifiedBy(managerID, role string) bool {
	return role == RoleAdmin || p.CreatedBy == managerID
}

// NormalizeText recorta y pasa a minúsculas (nombre y categoría se guardan así).
// cases.Caser no es seguro entre goroutines: se crea uno por llamada.
func NormalizeText(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Normalize aplica las reglas de almacenamiento: nombre y categoría en minúsculas y sin espacios extremos.
func (p *Product) Normalize() {
	p.Name = NormalizeText(p.Name)
	p.Category = NormalizeText(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
}

// ProductPatch actualización parcial; nil = no tocar.
type ProductPatch struct {
	Name              *string
	Description       *string
	Price             *decimal.Decimal
	Category          *string
	AvailableQuantity *int
	ImageURL          *string
	Status            *ProductStatus
}

// IsEmpty indica si el patch no modifica ningún campo.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil &&
		p.AvailableQuantity == nil && p.ImageURL == nil && p.Status == nil
}

// ApplyTo devuelve una copia del producto con el patch aplicado y normalizado.
func (p ProductPatch) ApplyTo(current *Product) *Product {
	next := current.Clone()
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.AvailableQuantity != nil {
		next.AvailableQuantity = *p.AvailableQuantity
	}
	if p.ImageURL != nil {
		next.ImageURL = *p.ImageURL
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	next.Normalize()
	return next
}
