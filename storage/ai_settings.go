package storage

import (
	"fmt"

	"meetminder/models"
)

// CreateAiSettings stores a settings record for the user. Each toggle
// defaults to true unless the patch overrides it. Callers are expected
// to keep at most one record per user; the store does not enforce a
// uniqueness constraint.
func (s *Store) CreateAiSettings(userID int, patch models.AiSettingsPatch) (models.AiSettings, error) {
	settings := models.AiSettings{
		UserID:               userID,
		AutoDetectMeetings:   true,
		SmartNotifications:   true,
		LearnFromPreferences: true,
	}
	applyAiSettingsPatch(&settings, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	settings.ID = s.aiSettingsID
	s.aiSettingsID++

	s.aiSettings[settings.ID] = settings
	return settings, nil
}

// GetAiSettingsByUser retrieves the user's settings record via a
// linear scan. Fine at demo scale; an index would be needed for real
// cardinality.
func (s *Store) GetAiSettingsByUser(userID int) (models.AiSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, settings := range s.aiSettings {
		if settings.UserID == userID {
			return settings, nil
		}
	}
	return models.AiSettings{}, fmt.Errorf("ai settings for user %d: %w", userID, ErrNotFound)
}

// UpdateAiSettings merges the patch over the stored record and returns
// the result.
func (s *Store) UpdateAiSettings(id int, patch models.AiSettingsPatch) (models.AiSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.aiSettings[id]
	if !ok {
		return models.AiSettings{}, fmt.Errorf("ai settings %d: %w", id, ErrNotFound)
	}

	applyAiSettingsPatch(&settings, patch)
	s.aiSettings[id] = settings
	return settings, nil
}

func applyAiSettingsPatch(settings *models.AiSettings, patch models.AiSettingsPatch) {
	if patch.AutoDetectMeetings != nil {
		settings.AutoDetectMeetings = *patch.AutoDetectMeetings
	}
	if patch.SmartNotifications != nil {
		settings.SmartNotifications = *patch.SmartNotifications
	}
	if patch.LearnFromPreferences != nil {
		settings.LearnFromPreferences = *patch.LearnFromPreferences
	}
}
