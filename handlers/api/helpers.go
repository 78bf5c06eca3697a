package api

import (
	"strconv"

	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// CurrentUserID returns the authenticated user's id set by the session
// middleware.
func CurrentUserID(c *fiber.Ctx) (int, error) {
	userID, ok := c.Locals("userId").(int)
	if !ok || userID == 0 {
		return 0, utils.UnauthorizedError("Not authenticated", nil)
	}
	return userID, nil
}

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, utils.BadRequestError("Invalid id", err)
	}
	return id, nil
}

// RequestLocalizer returns the localizer chosen by the locale
// middleware, falling back to the default.
func RequestLocalizer(c *fiber.Ctx) *i18n.Localizer {
	if localizer, ok := c.Locals("localizer").(*i18n.Localizer); ok {
		return localizer
	}
	return utils.Localizer
}
