// Package backend elige el adaptador de persistencia según STORE_DRIVER.
package backend

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/internal/infrastructure/mongo"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/pkg/config"
)

// Backend puertos de persistencia de un mismo almacén.
type Backend struct {
	Driver   string
	Managers repository.ManagerRepository
	Products repository.ProductRepository
	History  repository.ProductHistoryRepository
	Tx       catalog.TxRunner

	ping  func(context.Context) error
	close func(context.Context) error
}

// Ping chequeo de conectividad para /health.
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// Close libera conexiones.
func (b *Backend) Close(ctx context.Context) error { return b.close(ctx) }

// Open conecta el almacén configurado. postgres aplica las migraciones; mongo crea índices.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		s, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:   cfg.Store.Driver,
			Managers: s.Managers(),
			Products: s.Products(),
			History:  s.History(),
			Tx:       s.TxRunner(),
			ping:     s.Ping,
			close:    s.Close,
		}, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:   cfg.Store.Driver,
			Managers: s.Managers(),
			Products: s.Products(),
			History:  s.History(),
			Tx:       s.TxRunner(),
			ping:     s.Ping,
			close:    func(context.Context) error { s.Close(); return nil },
		}, nil
	case config.DriverMemory:
		s := memory.New()
		return &Backend{
			Driver:   cfg.Store.Driver,
			Managers: s.Managers(),
			Products: s.Products(),
			History:  s.History(),
			Tx:       s.TxRunner(),
			ping:     s.Ping,
			close:    func(context.Context) error { return nil },
		}, nil
	default:
		return nil, errors.Errorf("backend: driver no soportado %q", cfg.Store.Driver)
	}
}
