package storage

import (
	"testing"
	"time"

	"meetminder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return NewWithClock(func() time.Time { return testClock })
}

func strPtr(s string) *string { return &s }

func TestCreateUserDefaultsAndUniqueness(t *testing.T) {
	s := newTestStore()

	user, err := s.CreateUser(models.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "free", user.Plan)
	assert.Nil(t, user.FullName)

	_, err = s.CreateUser(models.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	found, err := s.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.GetUserByUsername("bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMeetingFillsDefaults(t *testing.T) {
	s := newTestStore()

	start := testClock.Add(time.Hour)
	meeting, err := s.CreateMeeting(models.Meeting{
		UserID:    1,
		Title:     "Planning",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, meeting.Status)
	assert.Nil(t, meeting.Description)
	assert.Nil(t, meeting.Location)
	assert.Nil(t, meeting.MeetingURL)
	assert.Nil(t, meeting.Source)
	assert.Nil(t, meeting.SourceID)
	assert.NotNil(t, meeting.Metadata)
	assert.Empty(t, meeting.Metadata)
}

func TestMeetingIDsStrictlyIncreasing(t *testing.T) {
	s := newTestStore()

	start := testClock
	var lastID int
	for i := 0; i < 5; i++ {
		meeting, err := s.CreateMeeting(models.Meeting{
			UserID:    1,
			Title:     "m",
			StartTime: start,
			EndTime:   start,
		})
		require.NoError(t, err)
		assert.Greater(t, meeting.ID, lastID)
		lastID = meeting.ID
	}

	// Deleting must not recycle ids.
	s.DeleteMeeting(lastID)
	meeting, err := s.CreateMeeting(models.Meeting{UserID: 1, Title: "m", StartTime: start, EndTime: start})
	require.NoError(t, err)
	assert.Greater(t, meeting.ID, lastID)
}

func TestCreateMeetingRejectsInvertedTimes(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateMeeting(models.Meeting{
		UserID:    1,
		Title:     "backwards",
		StartTime: testClock,
		EndTime:   testClock.Add(-time.Minute),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestUpdateMeetingMergesPatch(t *testing.T) {
	s := newTestStore()

	start := testClock.Add(time.Hour)
	created, err := s.CreateMeeting(models.Meeting{
		UserID:      7,
		Title:       "Sync",
		Description: strPtr("weekly"),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Location:    strPtr("Room A"),
	})
	require.NoError(t, err)

	status := models.StatusAccepted
	updated, err := s.UpdateMeeting(created.ID, models.MeetingPatch{
		Status:   &status,
		Location: strPtr("Room B"),
	})
	require.NoError(t, err)

	// Patched fields win, everything else is untouched.
	assert.Equal(t, models.StatusAccepted, updated.Status)
	assert.Equal(t, "Room B", *updated.Location)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.StartTime, updated.StartTime)
	assert.Equal(t, created.UserID, updated.UserID)

	got, err := s.GetMeeting(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateMeetingErrors(t *testing.T) {
	s := newTestStore()

	_, err := s.UpdateMeeting(42, models.MeetingPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	start := testClock
	created, err := s.CreateMeeting(models.Meeting{UserID: 1, Title: "m", StartTime: start, EndTime: start.Add(time.Hour)})
	require.NoError(t, err)

	bad := models.MeetingStatus("cancelled")
	_, err = s.UpdateMeeting(created.ID, models.MeetingPatch{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	earlier := start.Add(-time.Hour)
	_, err = s.UpdateMeeting(created.ID, models.MeetingPatch{EndTime: &earlier})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// A failed patch leaves the record unchanged.
	got, err := s.GetMeeting(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestDeleteMeetingIsIdempotent(t *testing.T) {
	s := newTestStore()

	created, err := s.CreateMeeting(models.Meeting{UserID: 1, Title: "m", StartTime: testClock, EndTime: testClock})
	require.NoError(t, err)

	s.DeleteMeeting(created.ID)
	_, err = s.GetMeeting(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete is a no-op, not an error.
	s.DeleteMeeting(created.ID)
}

func TestListMeetingsByUserFiltersOwnership(t *testing.T) {
	s := newTestStore()

	for _, userID := range []int{1, 1, 2} {
		_, err := s.CreateMeeting(models.Meeting{UserID: userID, Title: "m", StartTime: testClock, EndTime: testClock})
		require.NoError(t, err)
	}

	assert.Len(t, s.ListMeetingsByUser(1), 2)
	assert.Len(t, s.ListMeetingsByUser(2), 1)
	assert.Empty(t, s.ListMeetingsByUser(3))
}

func TestCreateNotificationStampsAndForcesUnread(t *testing.T) {
	s := newTestStore()

	meetingID := 3
	notification, err := s.CreateNotification(models.Notification{
		UserID:    1,
		MeetingID: &meetingID,
		Message:   "Meeting accepted",
		Read:      true,                       // must be ignored
		SentAt:    testClock.Add(-time.Hour),  // must be ignored
	})
	require.NoError(t, err)

	assert.False(t, notification.Read)
	assert.Equal(t, testClock, notification.SentAt)
	assert.Equal(t, 3, *notification.MeetingID)

	read, err := s.MarkNotificationRead(notification.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = s.MarkNotificationRead(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAiSettingsDefaultsAndPatch(t *testing.T) {
	s := newTestStore()

	_, err := s.GetAiSettingsByUser(1)
	assert.ErrorIs(t, err, ErrNotFound)

	settings, err := s.CreateAiSettings(1, models.AiSettingsPatch{})
	require.NoError(t, err)
	assert.True(t, settings.AutoDetectMeetings)
	assert.True(t, settings.SmartNotifications)
	assert.True(t, settings.LearnFromPreferences)

	off := false
	updated, err := s.UpdateAiSettings(settings.ID, models.AiSettingsPatch{SmartNotifications: &off})
	require.NoError(t, err)
	assert.True(t, updated.AutoDetectMeetings)
	assert.False(t, updated.SmartNotifications)

	found, err := s.GetAiSettingsByUser(1)
	require.NoError(t, err)
	assert.Equal(t, updated, found)
}

func TestSourcesScopedToUser(t *testing.T) {
	s := newTestStore()

	email, err := s.CreateEmailSource(models.EmailSource{UserID: 1, Provider: "gmail", Email: "a@example.com", Active: true})
	require.NoError(t, err)
	_, err = s.CreateChatSource(models.ChatSource{UserID: 2, Provider: "slack", Username: "a", Active: true})
	require.NoError(t, err)

	assert.Len(t, s.ListEmailSourcesByUser(1), 1)
	assert.Empty(t, s.ListEmailSourcesByUser(2))
	assert.Len(t, s.ListChatSourcesByUser(2), 1)

	s.DeleteEmailSource(email.ID)
	s.DeleteEmailSource(email.ID) // idempotent
	assert.Empty(t, s.ListEmailSourcesByUser(1))
}

func TestResetRestartsCounters(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateUser(models.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = s.CreateMeeting(models.Meeting{UserID: 1, Title: "m", StartTime: testClock, EndTime: testClock})
	require.NoError(t, err)

	s.Reset()

	assert.Empty(t, s.ListMeetingsByUser(1))
	user, err := s.CreateUser(models.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}
