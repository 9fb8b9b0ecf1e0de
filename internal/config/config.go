package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/budget/internal/database"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Budget"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"budget"`
		// Path is only used by the sqlite driver.
		Path string `envconfig:"DB_PATH" default:"./data/budget.db"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

func (c *Config) Dialect() (database.Dialect, error) {
	return database.ParseDialect(c.DB.Driver)
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() (string, error) {
	dialect, err := c.Dialect()
	if err != nil {
		return "", err
	}

	if dialect == database.SQLite {
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.DB.Path), nil
	}

	return c.ConnectionString(), nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.DB.User), url.QueryEscape(c.DB.Password), c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := cfg.Dialect(); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
