package models

// AiSettings holds the per-user AI behavior toggles. At most one record
// exists per user; it is created lazily on first read or write.
type AiSettings struct {
	ID                   int  `json:"id"`
	UserID               int  `json:"userId"`
	AutoDetectMeetings   bool `json:"autoDetectMeetings"`
	SmartNotifications   bool `json:"smartNotifications"`
	LearnFromPreferences bool `json:"learnFromPreferences"`
}

// AiSettingsPatch is a partial update of the toggles. Nil fields are
// left unchanged.
type AiSettingsPatch struct {
	AutoDetectMeetings   *bool `json:"autoDetectMeetings"`
	SmartNotifications   *bool `json:"smartNotifications"`
	LearnFromPreferences *bool `json:"learnFromPreferences"`
}
