package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	_ "github.com/joho/godotenv/autoload" // load .env if present
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every setting, e.g. OFFBOARDING_SERVER_PORT -> server.port.
const EnvPrefix = "OFFBOARDING_"

// Unprefixed variables still honoured from earlier deployments.
var legacyKeys = map[string]string{
	"PORT":         "server.port",
	"DATABASE_URL": "database.url",
}

type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development production"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"required"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`
	// StaticDir, when set, serves the offboarding form for unmatched GET paths.
	StaticDir string `koanf:"static_dir"`
}

type DatabaseConfig struct {
	// URL takes precedence over the individual connection fields.
	URL               string        `koanf:"url"`
	Host              string        `koanf:"host" validate:"required_without=URL"`
	Port              int           `koanf:"port" validate:"min=0,max=65535"`
	User              string        `koanf:"user" validate:"required_without=URL"`
	Password          string        `koanf:"password"`
	Name              string        `koanf:"name" validate:"required_without=URL"`
	SSLMode           string        `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32         `koanf:"max_conns" validate:"min=1"`
	MinConns          int32         `koanf:"min_conns" validate:"min=0,ltefield=MaxConns"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `koanf:"health_check_period"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// Default returns the settings the service ran with before it was configurable.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "production"},
		Server: ServerConfig{
			Port:               "3207",
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       15 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:              "postgres",
			Port:              5432,
			User:              "postgres",
			Password:          "admin123",
			Name:              "offboarding_db",
			SSLMode:           "disable",
			MaxConns:          10,
			MinConns:          1,
			MaxConnIdleTime:   5 * time.Minute,
			HealthCheckPeriod: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the environment on top of Default.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			// comma-separated env values become slices
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps OFFBOARDING_SERVER_READ_TIMEOUT to server.read_timeout.
// Only the first separator nests; the rest belong to the field name.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Validate checks the configuration using struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// DSN returns the connection string for the pgx pool.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = "sslmode=" + d.SSLMode
	}
	return u.String()
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}
