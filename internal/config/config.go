package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	envPrefix = "LINKLEAF"
)

var Module = fx.Provide(NewConfig)

type (
	Config struct {
		Host           string        `mapstructure:"HOST"`
		Port           string        `mapstructure:"PORT"`
		DBDriver       string        `mapstructure:"DB_DRIVER"`
		DBHost         string        `mapstructure:"DB_HOST"`
		DBPort         string        `mapstructure:"DB_PORT"`
		DBUser         string        `mapstructure:"DB_USER"`
		DBPassword     string        `mapstructure:"DB_PASSWORD"`
		DBName         string        `mapstructure:"DB_NAME"`
		DBSSLMode      string        `mapstructure:"DB_SSL_MODE"`
		DBPath         string        `mapstructure:"DB_PATH"`
		DBLogQueries   bool          `mapstructure:"DB_LOG_QUERIES"`
		JWTSecret      string        `mapstructure:"JWT_SECRET"`
		JWTTTL         time.Duration `mapstructure:"JWT_TTL"`
		LogLevel       string        `mapstructure:"LOG_LEVEL"`
		LogDevelopment bool          `mapstructure:"LOG_DEVELOPMENT"`
		CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	}
)

var envs = []string{
	"HOST", "PORT",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_PATH", "DB_LOG_QUERIES",
	"JWT_SECRET", "JWT_TTL",
	"LOG_LEVEL", "LOG_DEVELOPMENT",
	"CORS_ORIGINS",
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "0.0.0.0")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "linkleaf")
	v.SetDefault("DB_SSL_MODE", sslModeDisable)
	v.SetDefault("DB_PATH", "linkleaf.db")
	v.SetDefault("DB_LOG_QUERIES", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("CORS_ORIGINS", "*")

	for _, key := range envs {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSOrigins = splitOrigins(cfg.CORSOrigins)

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Listen is the address the HTTP server binds to.
func (c *Config) Listen() string {
	return c.Host + ":" + c.Port
}

// PostgresDSN builds a key/value DSN for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// env values arrive as a single comma separated string
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func validate(cfg *Config) error {
	switch cfg.DBDriver {
	case DriverPostgres:
		if err := validateSSLMode(cfg.DBSSLMode); err != nil {
			return err
		}
	case DriverSQLite:
		if cfg.DBPath == "" {
			return errors.New("DB path is required for the sqlite driver")
		}
	default:
		return errors.New(fmt.Sprintf("DB driver is invalid: %s", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	if cfg.JWTTTL <= 0 {
		return errors.New(fmt.Sprintf("JWT TTL must be positive: %s", cfg.JWTTTL))
	}
	return nil
}

func validateSSLMode(mode string) error {
	validSSLValues := []string{sslModeDisable, sslModeRequire}
	for _, validValue := range validSSLValues {
		if mode == validValue {
			return nil
		}
	}
	return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", mode))
}
