package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MySQL    MySQLConfig
	MongoDB  MongoDBConfig
	Auth     AuthConfig
	AI       AIConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MySQLConfig holds settings for the primary relational store.
type MySQLConfig struct {
	DSN string
}

// MongoDBConfig holds settings for the snapshot history store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds identity verification options. Audience, when set, pins
// the OAuth client id tokens must be issued to.
type AuthConfig struct {
	Audience string
}

// AIConfig holds settings for the AI provider.
type AIConfig struct {
	AnthropicKey string
}

// SnapshotConfig holds scheduler-related settings.
type SnapshotConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN: os.Getenv("MYSQL_DSN"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "agrilink"),
		},
		Auth: AuthConfig{
			Audience: os.Getenv("AUTH_AUDIENCE"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MySQL.DSN == "" {
		return errors.New("MYSQL_DSN must be provided")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Snapshot.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	// MongoDB, Auth audience and the AI key are optional: snapshot history,
	// audience pinning and the assistant degrade gracefully without them.

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
