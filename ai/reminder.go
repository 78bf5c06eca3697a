package ai

import (
	"meetminder/models"
	"meetminder/utils"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// ReminderGenerator produces the notification text for an accepted
// meeting.
type ReminderGenerator interface {
	GenerateReminder(meeting models.Meeting, localizer *i18n.Localizer) string
}

// TemplateReminder renders reminders from the localized message
// catalog. It is the canned-text counterpart of the keyword extractor.
type TemplateReminder struct{}

// NewTemplateReminder returns the template-based generator.
func NewTemplateReminder() *TemplateReminder {
	return &TemplateReminder{}
}

// GenerateReminder builds the reminder string for a meeting, including
// location and notes when present.
func (g *TemplateReminder) GenerateReminder(meeting models.Meeting, localizer *i18n.Localizer) string {
	location := utils.T(localizer, "reminder_virtual")
	if meeting.Location != nil && *meeting.Location != "" {
		location = utils.TWithData(localizer, "reminder_location", map[string]interface{}{
			"Location": *meeting.Location,
		})
	}

	message := utils.TWithData(localizer, "reminder_scheduled", map[string]interface{}{
		"Title":    meeting.Title,
		"Time":     meeting.StartTime.Format("15:04"),
		"Date":     meeting.StartTime.Format("Monday, January 2"),
		"Location": location,
	})

	if meeting.Description != nil && *meeting.Description != "" {
		message += " " + utils.TWithData(localizer, "reminder_notes", map[string]interface{}{
			"Notes": *meeting.Description,
		})
	}

	return message
}
