package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// ManagerRepo implementación del puerto ManagerRepository sobre PostgreSQL.
type ManagerRepo struct {
	q Querier
}

// NewManagerRepository construye el adaptador de persistencia para managers.
func NewManagerRepository(q Querier) *ManagerRepo {
	return &ManagerRepo{q: q}
}

const managerColumns = `id::text, firstname, lastname, email, phonenumber, password, role, status, created_at, updated_at`

// Create persiste un nuevo manager.
func (r *ManagerRepo) Create(ctx context.Context, m *entity.Manager) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	query := `
		INSERT INTO managers (id, firstname, lastname, email, phonenumber, password, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Firstname, m.Lastname, m.Email, m.PhoneNumber, m.PasswordHash, m.Role, m.Status,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return errors.Wrap(err, "postgres: insertar manager")
	}
	return nil
}

// GetByID obtiene un manager por ID.
func (r *ManagerRepo) GetByID(ctx context.Context, id string) (*entity.Manager, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+managerColumns+` FROM managers WHERE id = $1`, id)
}

// GetByEmail obtiene un manager por email (sin distinguir mayúsculas).
func (r *ManagerRepo) GetByEmail(ctx context.Context, email string) (*entity.Manager, error) {
	return r.getOne(ctx, `SELECT `+managerColumns+` FROM managers WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *ManagerRepo) getOne(ctx context.Context, query string, arg any) (*entity.Manager, error) {
	var m entity.Manager
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.Firstname, &m.Lastname, &m.Email, &m.PhoneNumber, &m.PasswordHash, &m.Role, &m.Status,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "postgres: buscar manager")
	}
	return &m, nil
}

// UpdatePassword reemplaza el hash de la credencial.
func (r *ManagerRepo) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	if !validUUID(id) {
		return domain.ErrManagerNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE managers SET password = $2, updated_at = $3 WHERE id = $1`, id, passwordHash, at)
	if err != nil {
		return errors.Wrap(err, "postgres: actualizar contraseña")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrManagerNotFound
	}
	return nil
}
