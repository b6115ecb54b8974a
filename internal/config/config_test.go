package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets every required variable; t.Setenv restores them after the test
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("DIALOGUE_URL", "https://dialogue.example.com/api")
	t.Setenv("DIALOGUE_WORKSPACE_ID", "ws-1")
	t.Setenv("RECIPE_API_KEY", "key")
}

// unset clears keys for the duration of the test
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name          string
		envValue      string
		expected      time.Duration
		expectedError bool
	}{
		{name: "not set", expected: 5 * time.Second},
		{name: "valid", envValue: "45s", expected: 45 * time.Second},
		{name: "minutes", envValue: "2m", expected: 2 * time.Minute},
		{name: "garbage", envValue: "soon", expectedError: true},
		{name: "missing unit", envValue: "30", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.envValue)

			d, err := getDuration("TEST_DURATION", 5*time.Second)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "TEST_DURATION")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	for _, key := range []string{"BOT_TOKEN", "DB_PASSWORD", "DIALOGUE_URL", "DIALOGUE_WORKSPACE_ID", "RECIPE_API_KEY"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			unset(t, key)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	setRequired(t)
	unset(t,
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"DIALOGUE_VERSION", "DIALOGUE_USERNAME", "DIALOGUE_PASSWORD",
		"RECIPE_API_URL", "HTTP_PORT", "TURN_TIMEOUT", "POLL_TIMEOUT",
	)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "souschef", cfg.Database.Name)
	assert.Equal(t, "souschef", cfg.Database.User)
	assert.Equal(t, "2016-07-11", cfg.Dialogue.Version)
	assert.Empty(t, cfg.Dialogue.Username)
	assert.Empty(t, cfg.RecipeAPI.URL)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.TurnTimeout)
	assert.Equal(t, 10*time.Second, cfg.PollTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DIALOGUE_USERNAME", "apikey")
	t.Setenv("DIALOGUE_PASSWORD", "secret")
	t.Setenv("TURN_TIMEOUT", "5s")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "apikey", cfg.Dialogue.Username)
	assert.Equal(t, "secret", cfg.Dialogue.Password)
	assert.Equal(t, 5*time.Second, cfg.TurnTimeout)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_TIMEOUT", "forever")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "POLL_TIMEOUT")
}
