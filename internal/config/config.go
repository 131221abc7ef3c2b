package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultDBName  = "databases/soccer_data.sqlite"
	defaultDataDir = "data/event_data"
	defaultPort    = "8080"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function, falling back to defaults for unset keys.
func FromEnv(lookup func(string) (string, bool)) Config {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getBool := func(key string) bool {
		value, ok := lookup(key)
		if !ok || value == "" {
			return false
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			log.Warn("Ignoring invalid boolean environment variable", "key", key, "value", value)
			return false
		}
		return b
	}

	cfg := Config{
		DBName:      getEnv("DB_NAME", defaultDBName),
		DataDir:     getEnv("DATA_DIR", defaultDataDir),
		Port:        getEnv("PORT", defaultPort),
		ForeignKeys: getBool("DB_FOREIGN_KEYS"),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
		Slack: SlackConfig{
			Token:     getEnv("SLACK_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
	}
	if cfg.Turso.PrimaryURL != "" && cfg.Turso.AuthToken == "" {
		log.Warn("TURSO_PRIMARY_URL is set without TURSO_AUTH_TOKEN")
	}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID == "" {
		log.Warn("SLACK_TOKEN is set without SLACK_CHANNEL_ID")
	}
	return cfg
}
