package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "elitecards")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "ap-south-1", cfg.S3Region)
		assert.Empty(t, cfg.CORSOrigins)
		assert.False(t, cfg.RunMigrations)
	})

	t.Run("missing DB_USER", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_USER", "")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("missing JWT_SECRET", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "  ")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("cors origins are split and trimmed", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	})

	t.Run("migrations flag", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("RUN_MIGRATIONS", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.True(t, cfg.RunMigrations)
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5433", DBUser: "app", DBPassword: "pw", DBName: "elitecards"}

	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=elitecards sslmode=disable", cfg.DSN())
}

func TestConfig_HTTPAddress(t *testing.T) {
	assert.Equal(t, ":9090", Config{Port: "9090"}.HTTPAddress())
}
