package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Drivers de persistencia soportados.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Mongo    MongoConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Log      LogConfig
	ErrTrack ErrTrackConfig
	Docs     DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string `validate:"required,oneof=development test staging production"`
	Name string `validate:"required"`
}

// IsProduction indica si la app corre en producción (sin stack en las respuestas de error).
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// StoreConfig selecciona el adaptador de persistencia.
type StoreConfig struct {
	Driver string `validate:"required,oneof=mongo postgres memory"`
}

// MongoConfig configuración del document store.
type MongoConfig struct {
	URI      string `validate:"required_if=Driver mongo"`
	Database string
	Timeout  time.Duration
	// Driver se copia desde StoreConfig para las reglas condicionales.
	Driver string `validate:"-"`
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string `validate:"required,min=16"`
	Expiration int    `validate:"gt=0"` // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int `validate:"gt=0,lt=65536"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel y archivo rotado (vacío = solo stdout).
type LogConfig struct {
	Level      string `validate:"oneof=trace debug info warn error"`
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ErrTrackConfig ventana y capacidad del contador de errores repetidos.
type ErrTrackConfig struct {
	Window     time.Duration `validate:"gt=0"`
	MaxEntries int           `validate:"gt=0"`
}

// DocsConfig Swagger UI.
type DocsConfig struct {
	Enabled  bool
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, MONGO_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	// .env solo existe en desarrollo local; en despliegues se usan las variables del sistema.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("leer .env: %w", err)
		}
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
			Timeout:  getDuration(v, "MONGO_TIMEOUT"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        getInt(v, "DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: getInt(v, "HTTP_PORT"),
		},
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("LOG_LEVEL")),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  getInt(v, "LOG_MAX_SIZE_MB"),
			MaxBackups: getInt(v, "LOG_MAX_BACKUPS"),
			MaxAgeDays: getInt(v, "LOG_MAX_AGE_DAYS"),
		},
		ErrTrack: ErrTrackConfig{
			Window:     getDuration(v, "ERRTRACK_WINDOW"),
			MaxEntries: getInt(v, "ERRTRACK_MAX_ENTRIES"),
		},
		Docs: DocsConfig{
			Enabled:  cast.ToBool(v.Get("DOCS_ENABLED")),
			FilePath: v.GetString("DOCS_FILE"),
		},
	}
	cfg.Mongo.Driver = cfg.Store.Driver

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "catalog-api")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DB", "store_management")
	v.SetDefault("MONGO_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "catalog")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 24*60)
	v.SetDefault("JWT_ISSUER", "catalog-api")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 20)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("ERRTRACK_WINDOW", "5m")
	v.SetDefault("ERRTRACK_MAX_ENTRIES", 1024)
	v.SetDefault("DOCS_ENABLED", false)
	v.SetDefault("DOCS_FILE", "./docs/swagger.json")
}

// validate rechaza configuraciones incompletas antes de arrancar el servidor.
func validate(cfg *Config) error {
	val := validator.New(validator.WithRequiredStructEnabled())
	if err := val.Struct(cfg); err != nil {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	return nil
}

// getInt tolera valores string en env (p. ej. "8080") y numéricos desde archivo.
func getInt(v *viper.Viper, key string) int {
	return cast.ToInt(v.Get(key))
}

func getDuration(v *viper.Viper, key string) time.Duration {
	return cast.ToDuration(v.Get(key))
}
