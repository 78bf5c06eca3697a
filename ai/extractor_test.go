package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var extractorClock = time.Date(2025, 3, 10, 12, 17, 0, 0, time.UTC)

func newTestExtractor() *KeywordExtractor {
	return NewKeywordExtractorWithClock(0, func() time.Time { return extractorClock }, 1)
}

func TestExtractFromEmailNoKeywords(t *testing.T) {
	e := newTestExtractor()

	extracted, err := e.ExtractFromEmail(context.Background(), "lunch was fine")
	require.NoError(t, err)
	assert.Nil(t, extracted)
}

func TestExtractFromEmailDetectsMeeting(t *testing.T) {
	e := newTestExtractor()

	content := "Quarterly planning meeting\nLet's get together on Thursday to plan the quarter."
	extracted, err := e.ExtractFromEmail(context.Background(), content)
	require.NoError(t, err)
	require.NotNil(t, extracted)

	// Title comes from the first usable line.
	assert.Equal(t, "Quarterly planning meeting", extracted.Title)
	assert.NotEmpty(t, extracted.Description)

	assert.True(t, extracted.StartTime.After(extractorClock))
	assert.Equal(t, extracted.StartTime.Add(time.Hour), extracted.EndTime)
	assert.Zero(t, extracted.StartTime.Minute()%30)

	assert.GreaterOrEqual(t, extracted.Confidence, 0.7)
	assert.LessOrEqual(t, extracted.Confidence, 1.0)
	assert.NotEmpty(t, extracted.Attendees)
}

func TestExtractFromEmailFallbackTitle(t *testing.T) {
	e := newTestExtractor()

	extracted, err := e.ExtractFromEmail(context.Background(), "sync\nshort first line above")
	require.NoError(t, err)
	require.NotNil(t, extracted)
	assert.Equal(t, "Meeting detected from email", extracted.Title)
}

func TestExtractFromEmailStripsHTML(t *testing.T) {
	e := newTestExtractor()

	extracted, err := e.ExtractFromEmail(context.Background(), "<p>Team &amp; client meeting tomorrow</p>")
	require.NoError(t, err)
	require.NotNil(t, extracted)
	assert.Equal(t, "Team & client meeting tomorrow", extracted.Title)
}

func TestExtractFromChatCannedTitles(t *testing.T) {
	e := newTestExtractor()

	cases := map[string]string{
		"can we do a standup at 9?":          "Daily Standup",
		"time for the quarterly review?":     "Project Review",
		"planning for next sprint tomorrow":  "Sprint Planning",
		"demo for the stakeholders on wed":   "Product Demo",
		"let's have a call about the budget": "Chat Meeting",
	}

	for content, want := range cases {
		extracted, err := e.ExtractFromChat(context.Background(), content)
		require.NoError(t, err)
		require.NotNil(t, extracted, "content: %s", content)
		assert.Equal(t, want, extracted.Title, "content: %s", content)
	}
}

func TestExtractFromChatSchedulesSoonerThanEmail(t *testing.T) {
	e := newTestExtractor()

	fromChat, err := e.ExtractFromChat(context.Background(), "quick sync tomorrow?")
	require.NoError(t, err)
	require.NotNil(t, fromChat)

	fromEmail, err := e.ExtractFromEmail(context.Background(), "Quick sync tomorrow about the launch")
	require.NoError(t, err)
	require.NotNil(t, fromEmail)

	assert.True(t, fromChat.StartTime.Before(fromEmail.StartTime))
	assert.True(t, fromChat.StartTime.After(extractorClock))

	assert.GreaterOrEqual(t, fromChat.Confidence, 0.6)
	assert.LessOrEqual(t, fromChat.Confidence, 1.0)
}

func TestExtractFromChatNoKeywords(t *testing.T) {
	e := newTestExtractor()

	extracted, err := e.ExtractFromChat(context.Background(), "did you see the game last night")
	require.NoError(t, err)
	assert.Nil(t, extracted)
}
