package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/notifier"
	"github.com/slack-go/slack"
)

// standingsShown caps the table excerpt; Slack allows at most 10 fields per section.
const (
	standingsShown = 10
	leadersShown   = 3
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts league summaries to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncNotificationsFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotificationsSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendLeagueSummary(summary *notifier.LeagueSummary, dryRun bool) error {
	msg := s.formatLeagueSummary(summary)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatLeagueSummary renders the ingestion counts, the top of the table and the player leaders.
func (s *Notifier) formatLeagueSummary(summary *notifier.LeagueSummary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf(":soccer: %s data loaded", title(summary.Run.League)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	countsText := fmt.Sprintf("Teams: %d | Events: %d | Players: %d", summary.Run.Teams, summary.Run.Events, summary.Run.Players)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", countsText, true, false), nil, nil))

	if summary.Statistics != nil && len(summary.Statistics.TeamRanking) > 0 {
		var fields []*slack.TextBlockObject
		for i, team := range summary.Statistics.TeamRanking {
			if i == standingsShown {
				break
			}
			fields = append(fields, slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*%d. %s*\n%d pts | %d goals", team.Position, team.TeamName, team.Points, team.Goals), false, false))
		}
		title := slack.NewTextBlockObject("mrkdwn", "*Final standings*", false, false)
		blocks = append(blocks, slack.NewSectionBlock(title, fields, nil))
	}

	if summary.Leaders != nil {
		if len(summary.Leaders.Scorers) > 0 {
			lines := []string{"*Top scorers*"}
			for i, sc := range summary.Leaders.Scorers {
				if i == leadersShown {
					break
				}
				lines = append(lines, fmt.Sprintf("• %s (%s) %d", sc.PlayerName, sc.TeamName, sc.GoalsAmount))
			}
			blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))
		}
		if len(summary.Leaders.Assistants) > 0 {
			lines := []string{"*Top assistants*"}
			for i, a := range summary.Leaders.Assistants {
				if i == leadersShown {
					break
				}
				lines = append(lines, fmt.Sprintf("• %s (%s) %d", a.PlayerName, a.TeamName, a.AssistAmount))
			}
			blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))
		}
	}

	if summary.Run.RunID != "" {
		contextText := fmt.Sprintf("Run %s at %s", summary.Run.RunID, time.Unix(summary.Run.LoadedAt, 0).UTC().Format("02 Jan 2006, 15:04 MST"))
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
