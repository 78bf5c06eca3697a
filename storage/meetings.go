package storage

import (
	"fmt"

	"meetminder/models"
)

// CreateMeeting stores a new meeting and returns it with its assigned
// id. An empty status defaults to pending and a nil metadata map to an
// empty one; nullable text fields stay nil when absent. Meetings that
// would end before they start are rejected.
func (s *Store) CreateMeeting(meeting models.Meeting) (models.Meeting, error) {
	if meeting.Status == "" {
		meeting.Status = models.StatusPending
	}
	if !meeting.Status.Valid() {
		return models.Meeting{}, fmt.Errorf("status %q: %w", meeting.Status, ErrInvalidStatus)
	}
	if meeting.EndTime.Before(meeting.StartTime) {
		return models.Meeting{}, ErrInvalidTimeRange
	}
	if meeting.Metadata == nil {
		meeting.Metadata = map[string]any{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meeting.ID = s.meetingID
	s.meetingID++

	s.meetings[meeting.ID] = meeting
	return meeting, nil
}

// GetMeeting retrieves a meeting by id.
func (s *Store) GetMeeting(id int) (models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meeting, ok := s.meetings[id]
	if !ok {
		return models.Meeting{}, fmt.Errorf("meeting %d: %w", id, ErrNotFound)
	}
	return meeting, nil
}

// ListMeetingsByUser returns every meeting belonging to the user, in
// unspecified order.
func (s *Store) ListMeetingsByUser(userID int) []models.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var meetings []models.Meeting
	for _, meeting := range s.meetings {
		if meeting.UserID == userID {
			meetings = append(meetings, meeting)
		}
	}
	return meetings
}

// UpdateMeeting shallow-merges the patch over the stored meeting and
// returns the merged record. Fields left nil in the patch are
// unchanged. The merged meeting must still have a valid status and
// time ordering.
func (s *Store) UpdateMeeting(id int, patch models.MeetingPatch) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meeting, ok := s.meetings[id]
	if !ok {
		return models.Meeting{}, fmt.Errorf("meeting %d: %w", id, ErrNotFound)
	}

	if patch.Title != nil {
		meeting.Title = *patch.Title
	}
	if patch.Description != nil {
		meeting.Description = patch.Description
	}
	if patch.StartTime != nil {
		meeting.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		meeting.EndTime = *patch.EndTime
	}
	if patch.Location != nil {
		meeting.Location = patch.Location
	}
	if patch.MeetingURL != nil {
		meeting.MeetingURL = patch.MeetingURL
	}
	if patch.Source != nil {
		meeting.Source = patch.Source
	}
	if patch.SourceID != nil {
		meeting.SourceID = patch.SourceID
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return models.Meeting{}, fmt.Errorf("status %q: %w", *patch.Status, ErrInvalidStatus)
		}
		meeting.Status = *patch.Status
	}
	if patch.Metadata != nil {
		meeting.Metadata = patch.Metadata
	}

	if meeting.EndTime.Before(meeting.StartTime) {
		return models.Meeting{}, ErrInvalidTimeRange
	}

	s.meetings[id] = meeting
	return meeting, nil
}

// DeleteMeeting removes a meeting. Deleting an absent id is not an
// error.
func (s *Store) DeleteMeeting(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.meetings, id)
}
