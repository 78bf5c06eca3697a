package storage

import (
	"fmt"

	"meetminder/models"
)

// CreateUser stores a new user and returns it with its assigned id.
// An empty plan defaults to "free". Usernames are unique.
func (s *Store) CreateUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return models.User{}, fmt.Errorf("username %q: %w", user.Username, ErrUsernameTaken)
		}
	}

	user.ID = s.userID
	s.userID++

	if user.Plan == "" {
		user.Plan = "free"
	}

	s.users[user.ID] = user
	return user, nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username via a linear scan.
func (s *Store) GetUserByUsername(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}
