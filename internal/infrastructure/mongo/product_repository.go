package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

var productPopulateTargets = map[string]populateTarget{
	repository.ProductFieldCreatedBy:     {localField: "createdBy", as: "creator"},
	repository.ProductFieldLastUpdatedBy: {localField: "lastUpdatedBy", as: "lastUpdater"},
}

// ProductRepository implementación MongoDB de repository.ProductRepository.
// Participa en la transacción si el ctx trae una sesión.
type ProductRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *ProductRepository) CreateMany(ctx context.Context, products []*entity.Product) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	docs := make([]any, 0, len(products))
	for _, p := range products {
		doc, err := toProductDocument(p)
		if err != nil {
			return err
		}
		if doc.ID.IsZero() {
			doc.ID = primitive.NewObjectID()
		}
		docs = append(docs, doc)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "mongo: insertar productos")
	}
	for i, p := range products {
		p.ID = docs[i].(*productDocument).ID.Hex()
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	opts := repository.PageOptions{Limit: 1, Populate: fullRefs()}.Normalized()
	match := bson.D{{Key: "_id", Value: oid}}
	pipeline, err := buildPipeline(match, opts, productFields, productPopulateTargets)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: buscar producto")
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "mongo: leer producto")
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0].toEntity()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, nil
	}
	doc, err := toProductDocument(p)
	if err != nil {
		return nil, err
	}
	set := bson.D{
		{Key: "name", Value: doc.Name},
		{Key: "description", Value: doc.Description},
		{Key: "price", Value: doc.Price},
		{Key: "category", Value: doc.Category},
		{Key: "availableQuantity", Value: doc.AvailableQuantity},
		{Key: "imageUrl", Value: doc.ImageURL},
		{Key: "status", Value: doc.Status},
		{Key: "lastUpdatedBy", Value: doc.LastUpdatedBy},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}

	updateCtx, cancel := context.WithTimeout(ctx, r.timeout)
	res, err := r.coll.UpdateByID(updateCtx, oid, bson.D{{Key: "$set", Value: set}})
	cancel()
	if err != nil {
		return nil, errors.Wrap(err, "mongo: actualizar producto")
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProductRepository) List(ctx context.Context, filter repository.Filter, opts repository.PageOptions) (*repository.Page[*entity.Product], error) {
	opts = opts.Normalized()
	match, err := buildMatch(filter, productFields)
	if err != nil {
		return nil, err
	}
	pipeline, err := buildPipeline(match, opts, productFields, productPopulateTargets)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return paginate(ctx, r.coll, match, pipeline, opts, (*productDocument).toEntity)
}

// Stats un único aggregate con $facet: totales y grupos por categoría.
func (r *ProductRepository) Stats(ctx context.Context) (*entity.ProductStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: bson.D{{Key: "$ne", Value: string(entity.ProductStatusDeleted)}}}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "totals", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: nil},
					{Key: "totalProducts", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
					{Key: "minPrice", Value: bson.D{{Key: "$min", Value: "$price"}}},
					{Key: "maxPrice", Value: bson.D{{Key: "$max", Value: "$price"}}},
					{Key: "totalInventory", Value: bson.D{{Key: "$sum", Value: "$availableQuantity"}}},
				}}},
			}},
			{Key: "categories", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$category"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
					{Key: "totalInventory", Value: bson.D{{Key: "$sum", Value: "$availableQuantity"}}},
				}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
			}},
		}}},
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: estadísticas de productos")
	}
	var docs []statsDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "mongo: leer estadísticas")
	}
	if len(docs) == 0 {
		return &entity.ProductStats{Categories: []entity.CategoryStats{}}, nil
	}
	return docs[0].toEntity()
}

func fullRefs() []repository.Populate {
	return []repository.Populate{
		{Path: repository.ProductFieldCreatedBy, Select: entity.ManagerRefFields},
		{Path: repository.ProductFieldLastUpdatedBy, Select: entity.ManagerRefFields},
	}
}
