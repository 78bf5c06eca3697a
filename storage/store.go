package storage

import (
	"sync"
	"time"

	"meetminder/models"
)

// Store is the in-memory datastore backing the whole demo. Every
// collection is a plain map keyed by an auto-incrementing integer id
// owned by the store. Handlers receive the store explicitly; there is
// no package-level instance.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users         map[int]models.User
	emailSources  map[int]models.EmailSource
	chatSources   map[int]models.ChatSource
	meetings      map[int]models.Meeting
	notifications map[int]models.Notification
	aiSettings    map[int]models.AiSettings

	userID         int
	emailSourceID  int
	chatSourceID   int
	meetingID      int
	notificationID int
	aiSettingsID   int
}

// New creates an empty store using the wall clock.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty store with an injected time source.
// Tests pass a fixed clock so sentAt stamps are deterministic.
func NewWithClock(now func() time.Time) *Store {
	s := &Store{now: now}
	s.reset()
	return s
}

// Reset drops every record and restarts all id counters at 1. Intended
// for test isolation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.users = make(map[int]models.User)
	s.emailSources = make(map[int]models.EmailSource)
	s.chatSources = make(map[int]models.ChatSource)
	s.meetings = make(map[int]models.Meeting)
	s.notifications = make(map[int]models.Notification)
	s.aiSettings = make(map[int]models.AiSettings)

	s.userID = 1
	s.emailSourceID = 1
	s.chatSourceID = 1
	s.meetingID = 1
	s.notificationID = 1
	s.aiSettingsID = 1
}
