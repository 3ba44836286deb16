// Package config loads environment variables into structured Go types.
//
// Variables are read from the process environment (optionally seeded from a
// `.env` file via godotenv's autoload), unmarshalled with koanf, and
// validated so the process fails fast on missing or malformed configuration.
// The resulting Config is built once in main and passed by reference into
// every collaborator; nothing reads the environment ambiently at call time.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// envPrefix scopes which environment variables belong to this service.
// SHIELD_SERVER.PORT maps to Config.Server.Port, nesting via ".".
const envPrefix = "SHIELD_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Email         EmailConfig          `koanf:"email" validate:"required"`
	Calendar      CalendarConfig       `koanf:"calendar"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
// Redis backs both the health checks and the asynq task queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token-signing settings for the admin auth surface.
// TokenTTL is in hours.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
	TokenTTL  int    `koanf:"token_ttl" validate:"required,min=1"`
}

// EmailConfig configures the notification collaborator (Resend).
//
// AdminAddress is the operator inbox that receives booking, contact and
// application notifications. FromName/FromAddress form the sender identity.
type EmailConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	FromName     string `koanf:"from_name" validate:"required"`
	FromAddress  string `koanf:"from_address" validate:"required,email"`
	AdminAddress string `koanf:"admin_address" validate:"required,email"`
}

// CalendarConfig configures the Google Calendar collaborator.
//
// The block is optional: when CredentialsFile is empty the booking workflow
// degrades to the fallback meeting link and never calls the API.
// CalendarID is the identity events are created under (usually the operator's
// address); it doubles as the impersonation subject for the service account.
// ReconcileInterval is in minutes and drives the orphan-event sweep.
type CalendarConfig struct {
	CredentialsFile   string `koanf:"credentials_file"`
	CalendarID        string `koanf:"calendar_id"`
	ReconcileInterval int    `koanf:"reconcile_interval"`
}

// Load reads configuration from the environment, unmarshals it into Config,
// validates it, and applies observability defaults.
//
// Any failure here is fatal: a process with bad config should not start.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are not user-configurable: telemetry must
	// see consistent naming regardless of what the env says.
	mainConfig.Observability.ServiceName = "shield-backend"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	if mainConfig.Calendar.ReconcileInterval <= 0 {
		mainConfig.Calendar.ReconcileInterval = 15
	}

	return mainConfig, nil
}
