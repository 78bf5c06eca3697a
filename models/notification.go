package models

import "time"

// Notification is a message shown to a user, usually about a meeting
// status change.
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	MeetingID *int      `json:"meetingId"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sentAt"`
	Read      bool      `json:"read"`
}
