package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/soccer-analysis/internal/dashboard"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/notifier"
	"github.com/mauv0809/soccer-analysis/internal/pubsub"
	"github.com/mauv0809/soccer-analysis/internal/statistics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testSummary() *notifier.LeagueSummary {
	return &notifier.LeagueSummary{
		Run: pubsub.LeagueLoaded{
			RunID:    "run-1",
			League:   "england",
			Teams:    20,
			Events:   643150,
			Players:  3603,
			LoadedAt: time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC).Unix(),
		},
		Statistics: &statistics.Statistics{
			TeamRanking: []statistics.TeamStanding{
				{TeamName: "Manchester City", Position: 1, Points: 100, Goals: 106},
				{TeamName: "Manchester United", Position: 2, Points: 81, Goals: 68},
			},
		},
		Leaders: &dashboard.PlayerLeaders{
			Scorers: []dashboard.ScorerRow{
				{Scorer: statistics.Scorer{PlayerName: "M. Salah", GoalsAmount: 32}, TeamName: "Liverpool"},
				{Scorer: statistics.Scorer{PlayerName: "H. Kane", GoalsAmount: 30}, TeamName: "Tottenham"},
				{Scorer: statistics.Scorer{PlayerName: "S. Agüero", GoalsAmount: 21}, TeamName: "Manchester City"},
				{Scorer: statistics.Scorer{PlayerName: "J. Vardy", GoalsAmount: 20}, TeamName: "Leicester"},
			},
		},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := n.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotificationsSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := n.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotificationsSent())
	assert.Equal(t, 0, metrics.NotificationsFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := n.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotificationsSent())
	assert.Equal(t, 1, metrics.NotificationsFailed())
}

func TestSendLeagueSummary_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, n.SendLeagueSummary(testSummary(), false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendLeagueSummary")
}

func TestFormatLeagueSummary(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatLeagueSummary(testSummary())
	require.Len(t, msg.Blocks.BlockSet, 5, "Expected header, counts, standings, scorers and context")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, ":soccer: England data loaded", header.Text.Text)

	counts, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Teams: 20 | Events: 643150 | Players: 3603", counts.Text.Text)

	standings, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, standings.Fields, 2)
	assert.Equal(t, "*1. Manchester City*\n100 pts | 106 goals", standings.Fields[0].Text)

	scorers, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Top scorers*\n• M. Salah (Liverpool) 32\n• H. Kane (Tottenham) 30\n• S. Agüero (Manchester City) 21", scorers.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[4].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	runText, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Run run-1 at 09 Jul 2025, 20:00 UTC", runText.Text)
}

func TestFormatLeagueSummary_WithoutStatistics(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatLeagueSummary(&notifier.LeagueSummary{Run: pubsub.LeagueLoaded{League: "italy"}})
	require.Len(t, msg.Blocks.BlockSet, 2)
}
