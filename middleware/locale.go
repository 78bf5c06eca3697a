package middleware

import (
	"strings"

	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// LocaleMiddleware detects and sets the user's locale
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := c.Query("lang")

		if lang == "" {
			lang = c.Cookies("lang")
		}

		if lang == "" {
			acceptLang := c.Get("Accept-Language")
			if strings.HasPrefix(acceptLang, "ja") {
				lang = "ja"
			} else {
				lang = "en"
			}
		}

		// Only allow supported languages
		if lang != "en" && lang != "ja" {
			lang = "en"
		}

		localizer := utils.GetLocalizer(lang)

		c.Locals("localizer", localizer)
		c.Locals("lang", lang)

		return c.Next()
	}
}
