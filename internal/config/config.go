// Package config carga la configuración desde variables de entorno
// (opcionalmente desde un .env) con viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"

	devJWTSecret = "dev-secret-change-me"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"APP_ENV"`
	AppName string `mapstructure:"APP_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DBDSN         string `mapstructure:"DB_DSN"`
	MongoURI      string `mapstructure:"MONGODB_URI"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`
	RedisURL      string `mapstructure:"REDIS_URL"`

	YelpAPIKey   string        `mapstructure:"YELP_API_KEY"`
	YelpBaseURL  string        `mapstructure:"YELP_BASE_URL"`
	YelpTimeout  time.Duration `mapstructure:"YELP_TIMEOUT"`
	YelpCacheTTL time.Duration `mapstructure:"YELP_CACHE_TTL"`

	PostsLegacyClearCompare bool `mapstructure:"POSTS_LEGACY_CLEAR_COMPARE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "pet-vet-reviews")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("JWT_TTL", "100h")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("DB_DSN", "")
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DATABASE", "petvet")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("YELP_API_KEY", "")
	v.SetDefault("YELP_BASE_URL", "https://api.yelp.com")
	v.SetDefault("YELP_TIMEOUT", "10s")
	v.SetDefault("YELP_CACHE_TTL", "10m")
	v.SetDefault("POSTS_LEGACY_CLEAR_COMPARE", false)
}

// Load lee envFiles (si existen) y luego el entorno. Un .env ausente no es error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required when STORAGE_DRIVER=postgres")
		}
	case StorageMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when STORAGE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.IsProduction() {
		if c.JWTSecret == devJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.StorageDriver == StorageMemory {
			return errors.New("STORAGE_DRIVER=memory is not allowed in production")
		}
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
