package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Closetrack"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"closetrack"`
	}

	Server struct {
		Timeout    time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigin string        `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	}

	Session struct {
		TTL time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	}

	Calendar struct {
		// Secret signs the feed tokens handed out to external calendar clients.
		TokenSecret string `envconfig:"CALENDAR_TOKEN_SECRET" default:"dev-only-secret"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
