package models

import "time"

// MeetingStatus is the acceptance state of a detected meeting.
type MeetingStatus string

const (
	StatusPending  MeetingStatus = "pending"
	StatusAccepted MeetingStatus = "accepted"
	StatusDeclined MeetingStatus = "declined"
)

// Valid reports whether s is one of the known statuses.
func (s MeetingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Meeting represents a meeting detected from an email or chat source.
type Meeting struct {
	ID          int            `json:"id"`
	UserID      int            `json:"userId"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     time.Time      `json:"endTime"`
	Location    *string        `json:"location"`
	MeetingURL  *string        `json:"meetingUrl"`
	Source      *string        `json:"source"`   // email, chat
	SourceID    *string        `json:"sourceId"` // ID from the original source
	Status      MeetingStatus  `json:"status"`
	Metadata    map[string]any `json:"metadata"` // attendees, confidence, etc.
}

// MeetingPatch is a partial update applied over a stored meeting.
// Nil fields are left unchanged.
type MeetingPatch struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	StartTime   *time.Time     `json:"startTime"`
	EndTime     *time.Time     `json:"endTime"`
	Location    *string        `json:"location"`
	MeetingURL  *string        `json:"meetingUrl"`
	Source      *string        `json:"source"`
	SourceID    *string        `json:"sourceId"`
	Status      *MeetingStatus `json:"status"`
	Metadata    map[string]any `json:"metadata"`
}
