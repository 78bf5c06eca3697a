package api

import (
	"errors"

	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// AiSettingsHandler serves the per-user AI toggle API.
type AiSettingsHandler struct {
	db *storage.Store
}

// NewAiSettingsHandler creates a new AI settings handler.
func NewAiSettingsHandler(db *storage.Store) *AiSettingsHandler {
	return &AiSettingsHandler{db: db}
}

// Get returns the user's settings, creating the record with all
// toggles on when it does not exist yet.
func (h *AiSettingsHandler) Get(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	settings, err := h.db.GetAiSettingsByUser(userID)
	if errors.Is(err, storage.ErrNotFound) {
		settings, err = h.db.CreateAiSettings(userID, models.AiSettingsPatch{})
	}
	if err != nil {
		return utils.InternalServerError("Failed to fetch AI settings", err)
	}
	return c.JSON(settings)
}

// Update patches the user's settings, creating the record first when
// absent. A newly created record is reported with 201.
func (h *AiSettingsHandler) Update(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var patch models.AiSettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestError("Invalid settings data", err)
	}

	settings, err := h.db.GetAiSettingsByUser(userID)
	if errors.Is(err, storage.ErrNotFound) {
		created, err := h.db.CreateAiSettings(userID, patch)
		if err != nil {
			return utils.InternalServerError("Failed to create AI settings", err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
	if err != nil {
		return utils.InternalServerError("Failed to fetch AI settings", err)
	}

	updated, err := h.db.UpdateAiSettings(settings.ID, patch)
	if err != nil {
		return utils.InternalServerError("Failed to update AI settings", err)
	}
	return c.JSON(updated)
}
