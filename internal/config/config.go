package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	PollTimeout time.Duration
	TurnTimeout time.Duration
	HTTPPort    string
	Database    DatabaseConfig
	Dialogue    DialogueConfig
	RecipeAPI   RecipeAPIConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// DialogueConfig holds the dialogue engine workspace settings
type DialogueConfig struct {
	URL         string
	WorkspaceID string
	Version     string
	Username    string
	Password    string
}

// RecipeAPIConfig holds the recipe lookup API settings
type RecipeAPIConfig struct {
	URL string
	Key string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	pollTimeout, err := getDuration("POLL_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	turnTimeout, err := getDuration("TURN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		PollTimeout: pollTimeout,
		TurnTimeout: turnTimeout,
		HTTPPort:    getEnv("HTTP_PORT", "8000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "souschef"),
			User:     getEnv("DB_USER", "souschef"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Dialogue: DialogueConfig{
			URL:         os.Getenv("DIALOGUE_URL"),
			WorkspaceID: os.Getenv("DIALOGUE_WORKSPACE_ID"),
			Version:     getEnv("DIALOGUE_VERSION", "2016-07-11"),
			Username:    os.Getenv("DIALOGUE_USERNAME"),
			Password:    os.Getenv("DIALOGUE_PASSWORD"),
		},
		RecipeAPI: RecipeAPIConfig{
			URL: os.Getenv("RECIPE_API_URL"),
			Key: os.Getenv("RECIPE_API_KEY"),
		},
	}

	// Validate required fields
	required := []struct {
		name  string
		value string
	}{
		{"BOT_TOKEN", cfg.BotToken},
		{"DB_PASSWORD", cfg.Database.Password},
		{"DIALOGUE_URL", cfg.Dialogue.URL},
		{"DIALOGUE_WORKSPACE_ID", cfg.Dialogue.WorkspaceID},
		{"RECIPE_API_KEY", cfg.RecipeAPI.Key},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%s is required", r.name)
		}
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}
