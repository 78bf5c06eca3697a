package api

import (
	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// SourceHandler serves the linked email/chat source API.
type SourceHandler struct {
	db *storage.Store
}

// NewSourceHandler creates a new source handler.
func NewSourceHandler(db *storage.Store) *SourceHandler {
	return &SourceHandler{db: db}
}

type createEmailSourceRequest struct {
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Active   *bool  `json:"active"`
}

type createChatSourceRequest struct {
	Provider string `json:"provider"`
	Username string `json:"username"`
	Active   *bool  `json:"active"`
}

// ListEmailSources returns the user's linked email accounts.
func (h *SourceHandler) ListEmailSources(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	sources := h.db.ListEmailSourcesByUser(userID)
	if sources == nil {
		sources = []models.EmailSource{}
	}
	return c.JSON(sources)
}

// CreateEmailSource links an email account. Active defaults to true
// when absent from the request.
func (h *SourceHandler) CreateEmailSource(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var req createEmailSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid email source data", err)
	}
	if req.Provider == "" || req.Email == "" {
		return utils.BadRequestError("Invalid email source data", nil).WithContext("field", "provider/email")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	source, err := h.db.CreateEmailSource(models.EmailSource{
		UserID:   userID,
		Provider: req.Provider,
		Email:    req.Email,
		Active:   active,
	})
	if err != nil {
		return utils.InternalServerError("Failed to create email source", err)
	}
	return c.Status(fiber.StatusCreated).JSON(source)
}

// DeleteEmailSource unlinks an owned email account.
func (h *SourceHandler) DeleteEmailSource(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}
	sourceID, err := ParamID(c)
	if err != nil {
		return err
	}

	source, err := h.db.GetEmailSource(sourceID)
	if err != nil {
		return utils.NotFoundError("Email source not found", err)
	}
	if source.UserID != userID {
		return utils.ForbiddenError("Not allowed to delete this source", nil)
	}

	h.db.DeleteEmailSource(sourceID)
	return c.SendStatus(fiber.StatusNoContent)
}

// ListChatSources returns the user's linked chat accounts.
func (h *SourceHandler) ListChatSources(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	sources := h.db.ListChatSourcesByUser(userID)
	if sources == nil {
		sources = []models.ChatSource{}
	}
	return c.JSON(sources)
}

// CreateChatSource links a chat account.
func (h *SourceHandler) CreateChatSource(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var req createChatSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid chat source data", err)
	}
	if req.Provider == "" || req.Username == "" {
		return utils.BadRequestError("Invalid chat source data", nil).WithContext("field", "provider/username")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	source, err := h.db.CreateChatSource(models.ChatSource{
		UserID:   userID,
		Provider: req.Provider,
		Username: req.Username,
		Active:   active,
	})
	if err != nil {
		return utils.InternalServerError("Failed to create chat source", err)
	}
	return c.Status(fiber.StatusCreated).JSON(source)
}

// DeleteChatSource unlinks an owned chat account.
func (h *SourceHandler) DeleteChatSource(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}
	sourceID, err := ParamID(c)
	if err != nil {
		return err
	}

	source, err := h.db.GetChatSource(sourceID)
	if err != nil {
		return utils.NotFoundError("Chat source not found", err)
	}
	if source.UserID != userID {
		return utils.ForbiddenError("Not allowed to delete this source", nil)
	}

	h.db.DeleteChatSource(sourceID)
	return c.SendStatus(fiber.StatusNoContent)
}
