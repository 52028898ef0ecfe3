package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Con un pgx.Tx como Querier participa en la transacción.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador; q puede ser el pool o una tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// productRow destino de scan de una fila de productos con sus referencias unidas.
type productRow struct {
	p                entity.Product
	status           string
	creator, updater refRow
}

func (r *productRow) toEntity() *entity.Product {
	p := r.p
	p.Status = entity.ProductStatus(r.status)
	p.Creator = r.creator.toEntity()
	p.LastUpdater = r.updater.toEntity()
	return &p
}

type productColumn struct {
	field string
	expr  string
	dest  func(*productRow) any
}

var productColumns = []productColumn{
	{repository.ProductFieldID, "p.id::text", func(r *productRow) any { return &r.p.ID }},
	{repository.ProductFieldName, "p.name", func(r *productRow) any { return &r.p.Name }},
	{repository.ProductFieldDescription, "p.description", func(r *productRow) any { return &r.p.Description }},
	{repository.ProductFieldPrice, "p.price", func(r *productRow) any { return &r.p.Price }},
	{repository.ProductFieldCategory, "p.category", func(r *productRow) any { return &r.p.Category }},
	{repository.ProductFieldAvailableQuantity, "p.available_quantity", func(r *productRow) any { return &r.p.AvailableQuantity }},
	{repository.ProductFieldImageURL, "p.image_url", func(r *productRow) any { return &r.p.ImageURL }},
	{repository.ProductFieldStatus, "p.status", func(r *productRow) any { return &r.status }},
	{repository.ProductFieldCreatedBy, "p.created_by::text", func(r *productRow) any { return &r.p.CreatedBy }},
	{repository.ProductFieldLastUpdatedBy, "p.last_updated_by::text", func(r *productRow) any { return &r.p.LastUpdatedBy }},
	{repository.ProductFieldCreatedAt, "p.created_at", func(r *productRow) any { return &r.p.CreatedAt }},
	{repository.ProductFieldUpdatedAt, "p.updated_at", func(r *productRow) any { return &r.p.UpdatedAt }},
}

// productJoins alias y columna local de cada referencia poblable.
var productJoins = map[string]struct {
	alias, local string
	ref          func(*productRow) *refRow
}{
	repository.ProductFieldCreatedBy:     {"c", "p.created_by", func(r *productRow) *refRow { return &r.creator }},
	repository.ProductFieldLastUpdatedBy: {"u", "p.last_updated_by", func(r *productRow) *refRow { return &r.updater }},
}

// productSelect SELECT con la proyección y los LEFT JOIN pedidos.
type productSelect struct {
	exprs []string
	joins string
	dests []func(*productRow) any
}

func newProductSelect(opts repository.PageOptions) (*productSelect, error) {
	s := &productSelect{}
	for _, c := range productColumns {
		if c.field != repository.ProductFieldID && !opts.Includes(c.field) {
			continue
		}
		s.exprs = append(s.exprs, c.expr)
		s.dests = append(s.dests, c.dest)
	}
	for _, pop := range opts.Populate {
		j, ok := productJoins[pop.Path]
		if !ok {
			return nil, errUnknownField("populate", pop.Path)
		}
		if !opts.Includes(pop.Path) {
			continue
		}
		cols, err := refColumns(j.alias, pop.Select)
		if err != nil {
			return nil, err
		}
		s.joins += " LEFT JOIN managers " + j.alias + " ON " + j.alias + ".id = " + j.local
		for _, col := range cols {
			ref, dest := j.ref, col.dest
			s.exprs = append(s.exprs, col.expr)
			s.dests = append(s.dests, func(r *productRow) any { return dest(ref(r)) })
		}
	}
	return s, nil
}

func (s *productSelect) sql() string {
	return "SELECT " + joinExprs(s.exprs) + " FROM products p" + s.joins
}

func (s *productSelect) scan(row pgx.Row) (*entity.Product, error) {
	var r productRow
	dests := make([]any, len(s.dests))
	for i, d := range s.dests {
		dests[i] = d(&r)
	}
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}
	return r.toEntity(), nil
}

// CreateMany inserta el lote en una sola tx (o savepoint si ya hay una): todo o nada.
func (r *ProductRepo) CreateMany(ctx context.Context, products []*entity.Product) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "postgres: iniciar inserción de productos")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const query = `
		INSERT INTO products (id, name, description, price, category, available_quantity, image_url,
			status, created_by, last_updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	batch := &pgx.Batch{}
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		batch.Queue(query,
			p.ID, p.Name, p.Description, p.Price, p.Category, p.AvailableQuantity, p.ImageURL,
			string(p.Status), p.CreatedBy, p.LastUpdatedBy, p.CreatedAt, p.UpdatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range products {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return errors.Wrap(err, "postgres: insertar producto")
		}
	}
	if err := br.Close(); err != nil {
		return errors.Wrap(err, "postgres: cerrar lote")
	}
	return errors.Wrap(tx.Commit(ctx), "postgres: confirmar productos")
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validUUID(id) {
		return nil, nil
	}
	sel, err := newProductSelect(repository.PageOptions{Populate: fullRefs()})
	if err != nil {
		return nil, err
	}
	p, err := sel.scan(r.q.QueryRow(ctx, sel.sql()+" WHERE p.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "postgres: buscar producto")
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if !validUUID(p.ID) {
		return nil, nil
	}
	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, available_quantity = $6,
			image_url = $7, status = $8, last_updated_by = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.AvailableQuantity,
		p.ImageURL, string(p.Status), p.LastUpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: actualizar producto")
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProductRepo) List(ctx context.Context, filter repository.Filter, opts repository.PageOptions) (*repository.Page[*entity.Product], error) {
	opts = opts.Normalized()
	sel, err := newProductSelect(opts)
	if err != nil {
		return nil, err
	}
	lq := listQuery{selectSQL: sel.sql(), countSQL: "SELECT COUNT(*) FROM products p"}
	if lq.where, err = buildWhere(filter, productSQLFields, &lq.args); err != nil {
		return nil, err
	}
	if lq.orderBy, err = buildOrderBy(opts.Sort, productSQLFields, "p.id"); err != nil {
		return nil, err
	}
	return paginate(ctx, r.q, lq, opts, sel.scan)
}

// Stats totales y grupos por categoría sobre los productos no eliminados.
func (r *ProductRepo) Stats(ctx context.Context) (*entity.ProductStats, error) {
	const totalsSQL = `
		SELECT COUNT(*), COALESCE(AVG(price), 0), COALESCE(MIN(price), 0), COALESCE(MAX(price), 0),
			COALESCE(SUM(available_quantity), 0)
		FROM products WHERE status <> $1`
	const categoriesSQL = `
		SELECT category, COUNT(*), AVG(price), COALESCE(SUM(available_quantity), 0)
		FROM products WHERE status <> $1
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC`
	deleted := string(entity.ProductStatusDeleted)

	stats := &entity.ProductStats{Categories: []entity.CategoryStats{}}
	err := r.q.QueryRow(ctx, totalsSQL, deleted).Scan(
		&stats.TotalProducts, &stats.AvgPrice, &stats.MinPrice, &stats.MaxPrice, &stats.TotalInventory,
	)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: totales de productos")
	}

	rows, err := r.q.Query(ctx, categoriesSQL, deleted)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: productos por categoría")
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.CategoryStats
		if err := rows.Scan(&c.Category, &c.Count, &c.AvgPrice, &c.TotalInventory); err != nil {
			return nil, errors.Wrap(err, "postgres: leer categoría")
		}
		stats.Categories = append(stats.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "postgres: iterar categorías")
	}
	return stats, nil
}

func fullRefs() []repository.Populate {
	return []repository.Populate{
		{Path: repository.ProductFieldCreatedBy, Select: entity.ManagerRefFields},
		{Path: repository.ProductFieldLastUpdatedBy, Select: entity.ManagerRefFields},
	}
}
