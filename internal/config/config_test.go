package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv(lookupFrom(nil))

	assert.Equal(t, "databases/soccer_data.sqlite", cfg.DBName)
	assert.Equal(t, "data/event_data", cfg.DataDir)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.ForeignKeys)
	assert.Empty(t, cfg.ProjectID)
	assert.Empty(t, cfg.Slack.Token)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg := FromEnv(lookupFrom(map[string]string{
		"DB_NAME":           "/tmp/soccer.sqlite",
		"DATA_DIR":          "/srv/data",
		"PORT":              "9090",
		"DB_FOREIGN_KEYS":   "true",
		"TURSO_PRIMARY_URL": "libsql://soccer.turso.io",
		"TURSO_AUTH_TOKEN":  "token",
		"GCP_PROJECT":       "soccer-project",
		"SLACK_TOKEN":       "xoxb-test",
		"SLACK_CHANNEL_ID":  "C123",
	}))

	assert.Equal(t, "/tmp/soccer.sqlite", cfg.DBName)
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.ForeignKeys)
	assert.Equal(t, TursoConfig{PrimaryURL: "libsql://soccer.turso.io", AuthToken: "token"}, cfg.Turso)
	assert.Equal(t, "soccer-project", cfg.ProjectID)
	assert.Equal(t, SlackConfig{Token: "xoxb-test", ChannelID: "C123"}, cfg.Slack)
}

func TestFromEnv_InvalidBoolFallsBack(t *testing.T) {
	cfg := FromEnv(lookupFrom(map[string]string{"DB_FOREIGN_KEYS": "sometimes"}))
	assert.False(t, cfg.ForeignKeys)
}
