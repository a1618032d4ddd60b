package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SOCIETY_APP_NAME":          os.Getenv("SOCIETY_APP_NAME"),
		"SOCIETY_APP_ENV":           os.Getenv("SOCIETY_APP_ENV"),
		"SOCIETY_APP_PORT":          os.Getenv("SOCIETY_APP_PORT"),
		"SOCIETY_DATABASE_HOST":     os.Getenv("SOCIETY_DATABASE_HOST"),
		"SOCIETY_DATABASE_PASSWORD": os.Getenv("SOCIETY_DATABASE_PASSWORD"),
		"SOCIETY_DATABASE_SSLMODE":  os.Getenv("SOCIETY_DATABASE_SSLMODE"),
		"SOCIETY_JWT_SECRET":        os.Getenv("SOCIETY_JWT_SECRET"),
		"SOCIETY_OTP_EXPOSE_CODE":   os.Getenv("SOCIETY_OTP_EXPOSE_CODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "society-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "society", cfg.Database.DBName)
		assert.Equal(t, time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, 5, cfg.Otp.MaxAttempts)
		assert.False(t, cfg.Otp.ExposeCode)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOCIETY_APP_PORT", "9090")
		os.Setenv("SOCIETY_DATABASE_HOST", "db.internal")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOCIETY_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOCIETY_APP_ENV", "production")
		os.Setenv("SOCIETY_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("production rejects raw otp exposure", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOCIETY_APP_ENV", "production")
		os.Setenv("SOCIETY_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("SOCIETY_DATABASE_PASSWORD", "secret")
		os.Setenv("SOCIETY_DATABASE_SSLMODE", "require")
		os.Setenv("SOCIETY_OTP_EXPOSE_CODE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "otp.expose_code")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:word",
		DBName:   "society",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss:word", "password must be escaped")
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
