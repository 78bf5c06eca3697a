package storage

import (
	"fmt"

	"meetminder/models"
)

// CreateEmailSource stores a linked email account. Callers that want
// the source active (the common case) set Active themselves; the HTTP
// layer defaults it to true when the field is absent from the request.
func (s *Store) CreateEmailSource(source models.EmailSource) (models.EmailSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source.ID = s.emailSourceID
	s.emailSourceID++

	s.emailSources[source.ID] = source
	return source, nil
}

// GetEmailSource retrieves an email source by id.
func (s *Store) GetEmailSource(id int) (models.EmailSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	source, ok := s.emailSources[id]
	if !ok {
		return models.EmailSource{}, fmt.Errorf("email source %d: %w", id, ErrNotFound)
	}
	return source, nil
}

// ListEmailSourcesByUser returns every email source linked to the user.
func (s *Store) ListEmailSourcesByUser(userID int) []models.EmailSource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sources []models.EmailSource
	for _, source := range s.emailSources {
		if source.UserID == userID {
			sources = append(sources, source)
		}
	}
	return sources
}

// DeleteEmailSource removes an email source. Deleting an absent id is
// not an error.
func (s *Store) DeleteEmailSource(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.emailSources, id)
}

// CreateChatSource stores a linked chat account.
func (s *Store) CreateChatSource(source models.ChatSource) (models.ChatSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source.ID = s.chatSourceID
	s.chatSourceID++

	s.chatSources[source.ID] = source
	return source, nil
}

// GetChatSource retrieves a chat source by id.
func (s *Store) GetChatSource(id int) (models.ChatSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	source, ok := s.chatSources[id]
	if !ok {
		return models.ChatSource{}, fmt.Errorf("chat source %d: %w", id, ErrNotFound)
	}
	return source, nil
}

// ListChatSourcesByUser returns every chat source linked to the user.
func (s *Store) ListChatSourcesByUser(userID int) []models.ChatSource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sources []models.ChatSource
	for _, source := range s.chatSources {
		if source.UserID == userID {
			sources = append(sources, source)
		}
	}
	return sources
}

// DeleteChatSource removes a chat source. Deleting an absent id is not
// an error.
func (s *Store) DeleteChatSource(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chatSources, id)
}
