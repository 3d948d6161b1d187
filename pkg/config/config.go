package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// DatabaseURL selects the postgres adapter when set; otherwise the
	// sqlite adapter at DatabasePath is used.
	DatabaseURL    string `env:"DATABASE_URL"`
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"taskapp.db"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"db/migrations"`

	JWTSecret string `env:"JWT_SECRET,required"`

	MetricsPort  string `env:"METRICS_PORT" envDefault:"9091"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`

	AvatarCacheEnabled bool `env:"AVATAR_CACHE_ENABLED" envDefault:"true"`
	EnforceHTTPS       bool `env:"ENFORCE_HTTPS" envDefault:"false"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
