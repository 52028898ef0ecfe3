// seed crea el manager administrador inicial en el almacén configurado.
// El registro público siempre asigna el rol manager; este es el único camino al rol admin.
//
// Uso: go run ./cmd/seed -email admin@example.com -password 'Secreta#123'
// Los flags también se leen de SEED_ADMIN_* (ver config de viper).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/validation"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/infrastructure/backend"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func main() {
	env := viper.New()
	env.SetEnvPrefix("SEED_ADMIN")
	env.AutomaticEnv()

	in := dto.RegisterRequest{}
	flag.StringVar(&in.Firstname, "firstname", env.GetString("FIRSTNAME"), "nombre")
	flag.StringVar(&in.Lastname, "lastname", env.GetString("LASTNAME"), "apellido")
	flag.StringVar(&in.Email, "email", env.GetString("EMAIL"), "email del admin")
	flag.StringVar(&in.PhoneNumber, "phone", env.GetString("PHONE"), "teléfono (máx. 11)")
	flag.StringVar(&in.Password, "password", env.GetString("PASSWORD"), "contraseña")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Store.Driver == config.DriverMemory {
		fmt.Fprintln(os.Stderr, "el almacén en memoria no persiste: use mongo o postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}
	defer func() { _ = store.Close(context.Background()) }()

	uc := auth.NewAuthUseCase(store.Managers, validation.New(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	admin, err := uc.CreateAdmin(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Warn().Str("email", in.Email).Msg("el admin ya existe")
		return
	case err != nil:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				log.Error().Str("field", f.Field).Msg(f.Message)
			}
		}
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("admin creado")
}
