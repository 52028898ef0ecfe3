package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestBuild_DefaultsConSecret(t *testing.T) {
	cfg, err := build(newViper(map[string]any{"JWT_SECRET": "0123456789abcdef"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 24*60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Minute, cfg.ErrTrack.Window)
	assert.Equal(t, "./docs/swagger.json", cfg.Docs.FilePath)
}

func TestBuild_ValoresStringDesdeEnv(t *testing.T) {
	cfg, err := build(newViper(map[string]any{
		"JWT_SECRET":   "0123456789abcdef",
		"HTTP_PORT":    "9090",
		"STORE_DRIVER": "POSTGRES",
		"DOCS_ENABLED": "true",
		"APP_ENV":      "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Docs.Enabled)
	assert.True(t, cfg.App.IsProduction())
}

func TestBuild_RechazaConfiguracionInvalida(t *testing.T) {
	cases := map[string]map[string]any{
		"sin secret":         {},
		"secret corto":       {"JWT_SECRET": "corto"},
		"driver":             {"JWT_SECRET": "0123456789abcdef", "STORE_DRIVER": "sqlite"},
		"mongo sin uri":      {"JWT_SECRET": "0123456789abcdef", "MONGO_URI": ""},
		"nivel de log":       {"JWT_SECRET": "0123456789abcdef", "LOG_LEVEL": "verbose"},
		"entorno":            {"JWT_SECRET": "0123456789abcdef", "APP_ENV": "qa"},
		"puerto fuera rango": {"JWT_SECRET": "0123456789abcdef", "HTTP_PORT": 70000},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := build(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "catalog", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/catalog?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
