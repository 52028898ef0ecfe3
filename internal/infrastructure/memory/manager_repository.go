package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ManagerRepository implementación en memoria de repository.ManagerRepository.
type ManagerRepository struct {
	store *Store
}

func (r *ManagerRepository) Create(ctx context.Context, m *entity.Manager) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, taken := r.store.emails[m.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	c := *m
	r.store.managers[m.ID] = &c
	r.store.emails[m.Email] = m.ID
	return nil
}

func (r *ManagerRepository) GetByID(ctx context.Context, id string) (*entity.Manager, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.managers[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *ManagerRepository) GetByEmail(ctx context.Context, email string) (*entity.Manager, error) {
	r.store.mu.RLock()
	id, ok := r.store.emails[email]
	r.store.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *ManagerRepository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.managers[id]
	if !ok {
		return domain.ErrManagerNotFound
	}
	m.PasswordHash = passwordHash
	m.UpdatedAt = at
	return nil
}
