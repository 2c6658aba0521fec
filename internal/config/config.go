package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"

	minSecretLength = 32
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"production"`
	AppPort string `env:"PORT" envDefault:"3000"`

	CredentialBackend string `env:"CREDENTIAL_BACKEND" envDefault:"mongo"`
	SessionBackend    string `env:"SESSION_BACKEND" envDefault:"mongo"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"auth"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	RedisURL string `env:"REDIS_URL"`

	SessionSecret          string        `env:"SESSION_SECRET,required"`
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"1m"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`

	CookieName     string `env:"COOKIE_NAME" envDefault:"sid"`
	CookieDomain   string `env:"COOKIE_DOMAIN"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"true"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`

	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"10"`

	ConnectRetryAttempts int           `env:"CONNECT_RETRY_ATTEMPTS" envDefault:"3"`
	ConnectRetryInterval time.Duration `env:"CONNECT_RETRY_INTERVAL" envDefault:"2s"`
}

// Load reads an optional .env file, then parses and validates the environment.
func Load() (Config, error) {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	return Parse(env.Options{})
}

// Parse builds a Config from the process environment, or from
// opts.Environment when set.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func (c Config) Validate() error {
	switch c.AppEnv {
	case EnvProduction, EnvDevelopment:
	default:
		return fmt.Errorf("%w: APP_ENV must be %q or %q", ErrInvalidConfig, EnvProduction, EnvDevelopment)
	}

	if c.AppPort == "" {
		return fmt.Errorf("%w: PORT is required", ErrInvalidConfig)
	}

	switch c.CredentialBackend {
	case BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: MONGODB_URI is required for the mongo credential backend", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("%w: DATABASE_DSN is required for the postgres credential backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown CREDENTIAL_BACKEND %q", ErrInvalidConfig, c.CredentialBackend)
	}

	switch c.SessionBackend {
	case BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: MONGODB_URI is required for the mongo session backend", ErrInvalidConfig)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("%w: REDIS_URL is required for the redis session backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SESSION_BACKEND %q", ErrInvalidConfig, c.SessionBackend)
	}

	if c.SessionTTL < time.Second {
		return fmt.Errorf("%w: SESSION_TTL must be at least 1s", ErrInvalidConfig)
	}
	if c.SessionCleanupInterval < 0 {
		return fmt.Errorf("%w: SESSION_CLEANUP_INTERVAL must not be negative", ErrInvalidConfig)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("%w: STORE_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.CookieName == "" {
		return fmt.Errorf("%w: COOKIE_NAME is required", ErrInvalidConfig)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("%w: BCRYPT_COST must be between 4 and 31", ErrInvalidConfig)
	}
	if c.ConnectRetryAttempts < 1 {
		return fmt.Errorf("%w: CONNECT_RETRY_ATTEMPTS must be at least 1", ErrInvalidConfig)
	}

	if !c.IsDevelopment() && len(c.SessionSecret) < minSecretLength {
		return fmt.Errorf("%w: SESSION_SECRET must be at least %d bytes in production", ErrInvalidConfig, minSecretLength)
	}

	return nil
}
