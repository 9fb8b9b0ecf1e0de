package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/config"
	"github.com/MrJamesThe3rd/budget/internal/database"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://postgres:@localhost:5432/budget?sslmode=disable", dsn)
}

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/budget.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://budget.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	dialect, err := cfg.Dialect()
	require.NoError(t, err)
	assert.Equal(t, database.SQLite, dialect)

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "file:/tmp/budget.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)
	assert.Equal(t, []string{"http://localhost:3000", "https://budget.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()
	assert.Error(t, err)
}
