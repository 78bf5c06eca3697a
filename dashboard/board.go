// Package dashboard derives the widget views of the meeting dashboard
// (pending approvals, today's schedule) from a canonical meeting list.
package dashboard

import (
	"sort"
	"time"

	"meetminder/models"
)

// Board holds the meeting list for one session and recomputes its
// derived views from the canonical list on every read. It is a
// single-writer structure: one session mutates its own board, and the
// id scheme (max+1) relies on that.
type Board struct {
	meetings []models.Meeting
	now      func() time.Time
	loc      *time.Location
}

// NewBoard builds a board over a copy of the given meetings, using the
// wall clock and local time zone for the "today" window.
func NewBoard(meetings []models.Meeting) *Board {
	return NewBoardWithClock(meetings, time.Now, time.Local)
}

// NewBoardWithClock is NewBoard with an injected clock and zone.
func NewBoardWithClock(meetings []models.Meeting, now func() time.Time, loc *time.Location) *Board {
	copied := make([]models.Meeting, len(meetings))
	copy(copied, meetings)
	return &Board{meetings: copied, now: now, loc: loc}
}

// Meetings returns the canonical list in its current order.
func (b *Board) Meetings() []models.Meeting {
	out := make([]models.Meeting, len(b.meetings))
	copy(out, b.meetings)
	return out
}

// Pending returns every meeting still awaiting a decision, in list
// order.
func (b *Board) Pending() []models.Meeting {
	var pending []models.Meeting
	for _, m := range b.meetings {
		if m.Status == models.StatusPending {
			pending = append(pending, m)
		}
	}
	return pending
}

// Today returns the accepted meetings whose start time falls within
// [midnight today, midnight tomorrow) in the board's zone, ascending
// by start time. Equal start times keep their list order.
func (b *Board) Today() []models.Meeting {
	now := b.now().In(b.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var today []models.Meeting
	for _, m := range b.meetings {
		if m.Status != models.StatusAccepted {
			continue
		}
		start := m.StartTime.In(b.loc)
		if !start.Before(dayStart) && start.Before(dayEnd) {
			today = append(today, m)
		}
	}

	sort.SliceStable(today, func(i, j int) bool {
		return today[i].StartTime.Before(today[j].StartTime)
	})
	return today
}

// UpdateStatus sets the status of the meeting with the given id and
// reports whether it was found. An unknown id leaves the board
// untouched.
func (b *Board) UpdateStatus(id int, status models.MeetingStatus) bool {
	for i := range b.meetings {
		if b.meetings[i].ID == id {
			b.meetings[i].Status = status
			return true
		}
	}
	return false
}

// Create appends a meeting, assigning the next id as the current
// maximum plus one. Safe only under the board's single-writer
// invariant.
func (b *Board) Create(meeting models.Meeting) models.Meeting {
	maxID := 0
	for _, m := range b.meetings {
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	meeting.ID = maxID + 1
	b.meetings = append(b.meetings, meeting)
	return meeting
}
