package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/validation"
	"github.com/jhoicas/catalog-api/internal/infrastructure/backend"
	httpRouter "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/errtrack"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacén")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	tracker := errtrack.New(cfg.ErrTrack.Window, cfg.ErrTrack.MaxEntries)
	defer tracker.Close()

	validate := validation.New()
	authUC := auth.NewAuthUseCase(store.Managers, validate, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(store.Products, store.History, store.Tx, validate)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(httpRouter.ErrorHandlerConfig{
			Log:        log,
			Tracker:    tracker,
			Production: cfg.App.IsProduction(),
		}),
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.App.IsProduction()}))
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		Store:     store,
		Service:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
