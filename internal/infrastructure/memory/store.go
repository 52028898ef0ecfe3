// Package memory implementa los puertos de repositorio en memoria. Se usa en tests y con
// STORE_DRIVER=memory para levantar la API sin base de datos.
//
// Las transacciones acumulan escrituras en un write-set propio y las aplican al confirmar,
// bajo el lock del store. No hay control de versiones: si dos transacciones modifican el
// mismo producto, prevalece la última en confirmar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	managers map[string]*entity.Manager
	emails   map[string]string // email -> id (índice único)
	products map[string]*entity.Product
	history  map[string]*entity.ProductChangeHistory
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		managers: make(map[string]*entity.Manager),
		emails:   make(map[string]string),
		products: make(map[string]*entity.Product),
		history:  make(map[string]*entity.ProductChangeHistory),
	}
}

// Managers repositorio de managers.
func (s *Store) Managers() *ManagerRepository { return &ManagerRepository{store: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// History repositorio de historial fuera de transacción.
func (s *Store) History() *HistoryRepository { return &HistoryRepository{store: s} }

// TxRunner ejecutor de transacciones sobre este store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{store: s} }

// Ping siempre disponible.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// managerRef referencia con el subconjunto de campos pedido (id siempre).
func (s *Store) managerRef(id string, fields []string) *entity.ManagerRef {
	m, ok := s.managers[id]
	if !ok {
		return nil
	}
	ref := &entity.ManagerRef{ID: m.ID}
	for _, f := range fields {
		switch f {
		case "firstname":
			ref.Firstname = m.Firstname
		case "lastname":
			ref.Lastname = m.Lastname
		case "email":
			ref.Email = m.Email
		}
	}
	return ref
}
