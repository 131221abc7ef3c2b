package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventLeagueLoaded EventType = "league-loaded"
)

// LeagueLoaded is published after a league's datasets have been persisted.
type LeagueLoaded struct {
	RunID    string `msgpack:"run_id" json:"run_id"`
	League   string `msgpack:"league" json:"league"`
	Teams    int    `msgpack:"teams" json:"teams"`
	Events   int    `msgpack:"events" json:"events"`
	Players  int    `msgpack:"players" json:"players"`
	LoadedAt int64  `msgpack:"loaded_at" json:"loaded_at"`
}

// PushEnvelope is the JSON body Pub/Sub push subscriptions deliver.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}
