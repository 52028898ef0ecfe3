// Package mongo implementa los puertos de repositorio sobre MongoDB.
// Las transacciones requieren un replica set (MONGO_URI con replicaSet=...).
package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/catalog-api/pkg/config"
)

// Nombres de colecciones.
const (
	managersCollection = "managers"
	productsCollection = "products"
	historyCollection  = "productchangehistories"
)

// Store cliente y base de datos compartidos por los repositorios.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect abre el cliente, verifica con ping y crea los índices.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo: conectar")
	}
	s := &Store{client: client, db: client.Database(cfg.Database), timeout: timeout}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Ping verifica el primario.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return errors.Wrap(s.client.Ping(ctx, readpref.Primary()), "mongo: ping")
}

// Close desconecta el cliente.
func (s *Store) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "mongo: desconectar")
}

// EnsureIndexes email único en managers; name, category, price y status en products
// para los filtros del listado; (productId, createdAt) en historial.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		managersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		historyCollection: {
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "mongo: índices de %s", coll)
		}
	}
	return nil
}

// Managers repositorio de managers.
func (s *Store) Managers() *ManagerRepository {
	return &ManagerRepository{coll: s.db.Collection(managersCollection), timeout: s.timeout}
}

// Products repositorio de productos.
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{coll: s.db.Collection(productsCollection), timeout: s.timeout}
}

// History repositorio del historial.
func (s *Store) History() *HistoryRepository {
	return &HistoryRepository{coll: s.db.Collection(historyCollection), timeout: s.timeout}
}

// TxRunner ejecutor de transacciones multi-documento.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{client: s.client, products: s.Products(), history: s.History()}
}
