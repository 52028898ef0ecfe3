package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductHistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial de cambios sobre PostgreSQL; los estados se guardan como JSONB.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador; q puede ser el pool o una tx.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// productSnapshot forma JSONB de un estado de producto (sin referencias pobladas).
type productSnapshot struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Category          string          `json:"category"`
	AvailableQuantity int             `json:"availableQuantity"`
	ImageURL          string          `json:"imageUrl"`
	Status            string          `json:"status"`
	CreatedBy         string          `json:"createdBy"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func toSnapshot(p entity.Product) productSnapshot {
	return productSnapshot{
		ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price, Category: p.Category,
		AvailableQuantity: p.AvailableQuantity, ImageURL: p.ImageURL, Status: string(p.Status),
		CreatedBy: p.CreatedBy, LastUpdatedBy: p.LastUpdatedBy, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (s productSnapshot) toEntity() entity.Product {
	return entity.Product{
		ID: s.ID, Name: s.Name, Description: s.Description, Price: s.Price, Category: s.Category,
		AvailableQuantity: s.AvailableQuantity, ImageURL: s.ImageURL, Status: entity.ProductStatus(s.Status),
		CreatedBy: s.CreatedBy, LastUpdatedBy: s.LastUpdatedBy, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func (r *HistoryRepo) Create(ctx context.Context, h *entity.ProductChangeHistory) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	query := `
		INSERT INTO product_change_history (id, product_id, previous_state, new_state, change_type, notes,
			updated_by, created_at, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.ProductID, toSnapshot(h.PreviousState), toSnapshot(h.NewState), string(h.ChangeType), h.Notes,
		h.UpdatedBy, h.CreatedAt, h.RecordedAt,
	)
	return errors.Wrap(err, "postgres: insertar historial")
}

func (r *HistoryRepo) List(ctx context.Context, filter repository.Filter, opts repository.PageOptions) (*repository.Page[*entity.ProductChangeHistory], error) {
	opts = opts.Normalized()

	exprs := []string{
		"h.id::text", "h.product_id::text", "h.previous_state", "h.new_state", "h.change_type", "h.notes",
		"h.updated_by::text", "h.created_at", "h.recorded_at",
	}
	var refCols []refColumn
	joins := ""
	for _, pop := range opts.Populate {
		if pop.Path != repository.HistoryFieldUpdatedBy {
			return nil, errUnknownField("populate", pop.Path)
		}
		cols, err := refColumns("u", pop.Select)
		if err != nil {
			return nil, err
		}
		refCols = cols
		joins = " LEFT JOIN managers u ON u.id = h.updated_by"
		for _, c := range cols {
			exprs = append(exprs, c.expr)
		}
	}

	lq := listQuery{
		selectSQL: "SELECT " + joinExprs(exprs) + " FROM product_change_history h" + joins,
		countSQL:  "SELECT COUNT(*) FROM product_change_history h",
	}
	var err error
	if lq.where, err = buildWhere(filter, historySQLFields, &lq.args); err != nil {
		return nil, err
	}
	if lq.orderBy, err = buildOrderBy(opts.Sort, historySQLFields, "h.id"); err != nil {
		return nil, err
	}

	scan := func(row pgx.Row) (*entity.ProductChangeHistory, error) {
		var (
			h          entity.ProductChangeHistory
			prev, next productSnapshot
			changeType string
			ref        refRow
		)
		dests := []any{&h.ID, &h.ProductID, &prev, &next, &changeType, &h.Notes, &h.UpdatedBy, &h.CreatedAt, &h.RecordedAt}
		for _, c := range refCols {
			dests = append(dests, c.dest(&ref))
		}
		if err := row.Scan(dests...); err != nil {
			return nil, err
		}
		h.PreviousState, h.NewState = prev.toEntity(), next.toEntity()
		h.ChangeType = entity.ProductChangeType(changeType)
		h.UpdatedByRef = ref.toEntity()
		return &h, nil
	}
	return paginate(ctx, r.q, lq, opts, scan)
}
