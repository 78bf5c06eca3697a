package storage

import (
	"sync"
	"time"
)

type sessionItem struct {
	data   []byte
	expiry time.Time // zero means no expiration
}

// SessionStorage is an in-memory session backend for the Fiber session
// store, with per-key TTL and a background janitor. It satisfies
// fiber.Storage.
type SessionStorage struct {
	items map[string]sessionItem
	mu    sync.RWMutex
	done  chan struct{}
}

// NewSessionStorage creates the storage and starts its cleanup loop.
func NewSessionStorage() *SessionStorage {
	s := &SessionStorage{
		items: make(map[string]sessionItem),
		done:  make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get returns the value for key, or nil if absent or expired.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	item, exists := s.items[key]
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	if !item.expiry.IsZero() && time.Now().After(item.expiry) {
		s.Delete(key)
		return nil, nil
	}
	return item.data, nil
}

// Set stores a value under key. A zero expiration means the entry
// never expires.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	item := sessionItem{data: val}
	if exp > 0 {
		item.expiry = time.Now().Add(exp)
	}

	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

// Delete removes a key. Absent keys are not an error.
func (s *SessionStorage) Delete(key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Reset removes all keys.
func (s *SessionStorage) Reset() error {
	s.mu.Lock()
	s.items = make(map[string]sessionItem)
	s.mu.Unlock()
	return nil
}

// Close stops the cleanup loop.
func (s *SessionStorage) Close() error {
	close(s.done)
	return nil
}

// Len returns the number of stored sessions, expired ones included
// until the janitor runs.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *SessionStorage) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *SessionStorage) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, item := range s.items {
		if !item.expiry.IsZero() && now.After(item.expiry) {
			delete(s.items, key)
		}
	}
}
