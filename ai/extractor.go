// Package ai holds the simulated meeting-intelligence capabilities.
// Extraction and reminder generation are interfaces so a real
// inference backend can replace the keyword implementation without
// touching callers.
package ai

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"meetminder/utils"

	"github.com/google/uuid"
)

// ExtractedMeeting is the structured result of scanning email or chat
// content for a meeting.
type ExtractedMeeting struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    *string   `json:"location"`
	MeetingURL  *string   `json:"meetingUrl"`
	Attendees   []string  `json:"attendees"`
	Confidence  float64   `json:"confidence"`
}

// MeetingExtractor derives structured meeting fields from unstructured
// text. A nil result with a nil error means no meeting was detected.
type MeetingExtractor interface {
	ExtractFromEmail(ctx context.Context, content string) (*ExtractedMeeting, error)
	ExtractFromChat(ctx context.Context, content string) (*ExtractedMeeting, error)
}

// meetingKeywords marks content as meeting-related when any of them
// appears.
var meetingKeywords = []string{
	"meeting", "call", "sync", "discussion", "huddle", "standup",
	"review", "planning", "retrospective", "demo", "presentation",
	"webinar", "conference", "workshop", "session", "appointment",
	"scheduled", "calendar", "agenda", "invite", "join",
}

var emailAttendeePool = []string{
	"john@example.com", "sarah@example.com", "mike@example.com", "lisa@example.com",
}

var chatAttendeePool = []string{"john", "sarah", "mike", "lisa"}

// KeywordExtractor is the demo MeetingExtractor: fixed keyword checks,
// randomized confidence, and invented schedule details. The delay
// stands in for inference latency and always runs to completion.
type KeywordExtractor struct {
	delay time.Duration
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewKeywordExtractor creates an extractor with the given simulated
// latency, using the wall clock and a time-seeded random source.
func NewKeywordExtractor(delay time.Duration) *KeywordExtractor {
	return NewKeywordExtractorWithClock(delay, time.Now, time.Now().UnixNano())
}

// NewKeywordExtractorWithClock is NewKeywordExtractor with an injected
// clock and seed, for deterministic tests.
func NewKeywordExtractorWithClock(delay time.Duration, now func() time.Time, seed int64) *KeywordExtractor {
	return &KeywordExtractor{
		delay: delay,
		now:   now,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// ExtractFromEmail scans email content. The title comes from the first
// usable line, the description is a snippet of the content.
func (e *KeywordExtractor) ExtractFromEmail(_ context.Context, content string) (*ExtractedMeeting, error) {
	time.Sleep(e.delay)

	content = utils.NormalizeContent(content)
	if !containsMeetingKeywords(content) {
		return nil, nil
	}

	title := "Meeting detected from email"
	if line, _, _ := strings.Cut(content, "\n"); len(line) > 5 && len(line) < 100 {
		title = strings.TrimSpace(line)
	}

	start, end := e.futureSlot(24)

	e.mu.Lock()
	defer e.mu.Unlock()

	meeting := &ExtractedMeeting{
		Title:       title,
		Description: utils.Snippet(content, 100),
		StartTime:   start,
		EndTime:     end,
		Attendees:   e.pickAttendees(emailAttendeePool),
		Confidence:  0.7 + e.rng.Float64()*0.3,
	}
	if e.rng.Float64() > 0.5 {
		meeting.Location = ptr("Conference Room A")
	}
	if e.rng.Float64() > 0.5 {
		meeting.MeetingURL = ptr("https://meet.example.com/abc123")
	}
	return meeting, nil
}

// ExtractFromChat scans chat messages. Titles are canned from the
// dominant keyword; chat meetings are assumed sooner than email ones.
func (e *KeywordExtractor) ExtractFromChat(_ context.Context, content string) (*ExtractedMeeting, error) {
	time.Sleep(e.delay)

	content = utils.NormalizeContent(content)
	if !containsMeetingKeywords(content) {
		return nil, nil
	}

	lower := strings.ToLower(content)
	title := "Chat Meeting"
	switch {
	case strings.Contains(lower, "standup"):
		title = "Daily Standup"
	case strings.Contains(lower, "review"):
		title = "Project Review"
	case strings.Contains(lower, "planning"):
		title = "Sprint Planning"
	case strings.Contains(lower, "demo"):
		title = "Product Demo"
	}

	start, end := e.futureSlot(12)

	e.mu.Lock()
	defer e.mu.Unlock()

	meeting := &ExtractedMeeting{
		Title:       title,
		Description: utils.Snippet(content, 100),
		StartTime:   start,
		EndTime:     end,
		Attendees:   e.pickAttendees(chatAttendeePool),
		Confidence:  0.6 + e.rng.Float64()*0.4,
	}
	if e.rng.Float64() > 0.7 {
		meeting.Location = ptr("Virtual Meeting Room")
	}
	if e.rng.Float64() > 0.3 {
		meeting.MeetingURL = ptr("https://meet.example.com/" + uuid.NewString()[:8])
	}
	return meeting, nil
}

// futureSlot returns a one-hour slot starting hoursFromNow from the
// clock, rounded to the nearest half hour.
func (e *KeywordExtractor) futureSlot(hoursFromNow int) (time.Time, time.Time) {
	start := e.now().Add(time.Duration(hoursFromNow) * time.Hour)
	rounded := (start.Minute() + 15) / 30 * 30
	start = time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location()).
		Add(time.Duration(rounded) * time.Minute)
	return start, start.Add(time.Hour)
}

// pickAttendees draws one to three names from the pool. Callers hold
// e.mu.
func (e *KeywordExtractor) pickAttendees(pool []string) []string {
	count := e.rng.Intn(3) + 1
	attendees := make([]string, 0, count)
	for i := 0; i < count; i++ {
		attendees = append(attendees, pool[e.rng.Intn(len(pool))])
	}
	return attendees
}

func containsMeetingKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range meetingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func ptr(s string) *string { return &s }
