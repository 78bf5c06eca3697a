package storage

import (
	"fmt"

	"meetminder/models"
)

// CreateNotification stores a notification. The sent timestamp is
// always stamped with the store clock and the read flag forced to
// false, regardless of the input.
func (s *Store) CreateNotification(notification models.Notification) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification.ID = s.notificationID
	s.notificationID++

	notification.SentAt = s.now()
	notification.Read = false

	s.notifications[notification.ID] = notification
	return notification, nil
}

// GetNotification retrieves a notification by id.
func (s *Store) GetNotification(id int) (models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notification, ok := s.notifications[id]
	if !ok {
		return models.Notification{}, fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	return notification, nil
}

// ListNotificationsByUser returns every notification for the user.
func (s *Store) ListNotificationsByUser(userID int) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var notifications []models.Notification
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			notifications = append(notifications, notification)
		}
	}
	return notifications
}

// MarkNotificationRead sets the read flag and returns the updated
// record.
func (s *Store) MarkNotificationRead(id int) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok {
		return models.Notification{}, fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}

	notification.Read = true
	s.notifications[id] = notification
	return notification, nil
}
