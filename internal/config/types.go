package config

// Config holds all configuration for the application.
type Config struct {
	DBName      string
	DataDir     string
	Port        string
	ForeignKeys bool
	Turso       TursoConfig
	// ProjectID enables league-loaded events on Google Cloud Pub/Sub when set.
	ProjectID string
	// Slack enables league summaries in a channel when Token is set.
	Slack SlackConfig
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
