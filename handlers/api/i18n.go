package api

import (
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// I18nHandler handles i18n-related requests
type I18nHandler struct{}

// GetTranslations returns translations for the client-side JavaScript
func (h *I18nHandler) GetTranslations(c *fiber.Ctx) error {
	lang := c.Params("lang")
	if lang != "en" && lang != "ja" {
		lang = "en"
	}

	localizer := utils.GetLocalizer(lang)

	translations := map[string]string{
		"meeting_accepted":    utils.T(localizer, "meeting_accepted"),
		"meeting_declined":    utils.T(localizer, "meeting_declined"),
		"meeting_created":     utils.T(localizer, "meeting_created"),
		"meeting_detected":    utils.T(localizer, "meeting_detected"),
		"no_meeting_detected": utils.T(localizer, "no_meeting_detected"),
		"pending_approvals":   utils.T(localizer, "pending_approvals"),
		"today_schedule":      utils.T(localizer, "today_schedule"),
		"error_network":       utils.T(localizer, "error_network"),
		"error_404":           utils.T(localizer, "error_404"),
		"error_500":           utils.T(localizer, "error_500"),
	}

	return c.JSON(translations)
}
