package repository

import (
	"context"
	"time"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ManagerRepository define el puerto de persistencia para Manager (DIP).
// Las lecturas devuelven (nil, nil) si no existe.
type ManagerRepository interface {
	// Create persiste un manager; devuelve domain.ErrEmailAlreadyExists si el email está tomado.
	Create(ctx context.Context, manager *entity.Manager) error
	GetByID(ctx context.Context, id string) (*entity.Manager, error)
	GetByEmail(ctx context.Context, email string) (*entity.Manager, error)
	// UpdatePassword único camino que modifica la credencial.
	UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error
}
