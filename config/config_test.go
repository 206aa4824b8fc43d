package config_test

import (
	"os"
	"testing"

	"tickoff/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("JWT_SECRET", "a-test-secret-that-is-long-enough")
	t.Setenv("JWT_ISSUER", "tickoff")
	t.Setenv("JWT_AUDIENCE", "tickoff-clients")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://app.example")
}

func TestProcess(t *testing.T) {
	t.Run("defaults with required values", func(t *testing.T) {
		setRequired(t)

		cfg := config.Config{}
		require.NoError(t, config.Process(&cfg))

		assert.Equal(t, config.BackendPostgres, cfg.DB.Backend)
		assert.False(t, cfg.IsMongo())
		assert.Equal(t, []string{"https://app.example"}, cfg.App.CORS.AllowedOrigins)
		assert.True(t, cfg.App.CORS.AllowCredentials)
		assert.Equal(t, "8080", cfg.Server.Port)
	})

	tests := []struct {
		name     string
		env      map[string]string
		unset    string
		expected error
	}{
		{
			name:  "missing secret",
			unset: "JWT_SECRET",
		},
		{
			name:  "missing issuer",
			unset: "JWT_ISSUER",
		},
		{
			name:  "missing audience",
			unset: "JWT_AUDIENCE",
		},
		{
			name:  "missing allowed origins",
			unset: "APP_CORS_ALLOWED_ORIGINS",
		},
		{
			name:     "blank secret",
			env:      map[string]string{"JWT_SECRET": "   "},
			expected: config.ErrEmptyJWTSecret,
		},
		{
			name:     "wildcard origin with credentials",
			env:      map[string]string{"APP_CORS_ALLOWED_ORIGINS": "*"},
			expected: config.ErrWildcardOrigin,
		},
		{
			name:     "unknown backend",
			env:      map[string]string{"DB_BACKEND": "mysql"},
			expected: config.ErrUnsupportedBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)

			if tt.unset != "" {
				// Setenv first so the value is restored on cleanup
				t.Setenv(tt.unset, "")
				require.NoError(t, os.Unsetenv(tt.unset))
			}

			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			err := config.Process(&config.Config{})
			require.Error(t, err)

			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}

	t.Run("wildcard origin without credentials", func(t *testing.T) {
		setRequired(t)
		t.Setenv("APP_CORS_ALLOWED_ORIGINS", "*")
		t.Setenv("APP_CORS_ALLOW_CREDENTIALS", "false")

		assert.NoError(t, config.Process(&config.Config{}))
	})

	t.Run("mongo backend", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DB_BACKEND", config.BackendMongo)

		cfg := config.Config{}
		require.NoError(t, config.Process(&cfg))

		assert.True(t, cfg.IsMongo())
	})
}
