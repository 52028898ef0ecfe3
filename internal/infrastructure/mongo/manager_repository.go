package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ManagerRepository = (*ManagerRepository)(nil)

// ManagerRepository implementación MongoDB de repository.ManagerRepository.
type ManagerRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *ManagerRepository) Create(ctx context.Context, m *entity.Manager) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc, err := toManagerDocument(m)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return errors.Wrap(err, "mongo: insertar manager")
	}
	m.ID = doc.ID.Hex()
	return nil
}

func (r *ManagerRepository) GetByID(ctx context.Context, id string) (*entity.Manager, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *ManagerRepository) GetByEmail(ctx context.Context, email string) (*entity.Manager, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *ManagerRepository) UpdatePassword(ctx context.Context, id, passwordHash string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrManagerNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "updatedAt", Value: at},
	}}})
	if err != nil {
		return errors.Wrap(err, "mongo: actualizar password")
	}
	if res.MatchedCount == 0 {
		return domain.ErrManagerNotFound
	}
	return nil
}

func (r *ManagerRepository) findOne(ctx context.Context, filter bson.D) (*entity.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc managerDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "mongo: buscar manager")
	}
	return doc.toEntity(), nil
}
