package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductHistoryRepository = (*HistoryRepository)(nil)

var historyPopulateTargets = map[string]populateTarget{
	repository.HistoryFieldUpdatedBy: {localField: "updatedBy", as: "updatedByRef"},
}

// HistoryRepository implementación MongoDB del historial (solo inserción y lectura).
type HistoryRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *HistoryRepository) Create(ctx context.Context, h *entity.ProductChangeHistory) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc, err := toHistoryDocument(h)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "mongo: insertar historial")
	}
	h.ID = doc.ID.Hex()
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, filter repository.Filter, opts repository.PageOptions) (*repository.Page[*entity.ProductChangeHistory], error) {
	opts = opts.Normalized()
	match, err := buildMatch(filter, historyFields)
	if err != nil {
		return nil, err
	}
	pipeline, err := buildPipeline(match, opts, historyFields, historyPopulateTargets)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return paginate(ctx, r.coll, match, pipeline, opts, (*historyDocument).toEntity)
}
