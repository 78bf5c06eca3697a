package api

import (
	"errors"
	"time"

	"meetminder/ai"
	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// MeetingHandler serves the meeting CRUD API.
type MeetingHandler struct {
	db       *storage.Store
	events   *EventBroker
	reminder ai.ReminderGenerator
}

// NewMeetingHandler creates a new meeting handler.
func NewMeetingHandler(db *storage.Store, events *EventBroker, reminder ai.ReminderGenerator) *MeetingHandler {
	return &MeetingHandler{
		db:       db,
		events:   events,
		reminder: reminder,
	}
}

type createMeetingRequest struct {
	Title       string               `json:"title"`
	Description *string              `json:"description"`
	StartTime   *time.Time           `json:"startTime"`
	EndTime     *time.Time           `json:"endTime"`
	Location    *string              `json:"location"`
	MeetingURL  *string              `json:"meetingUrl"`
	Source      *string              `json:"source"`
	SourceID    *string              `json:"sourceId"`
	Status      models.MeetingStatus `json:"status"`
	Metadata    map[string]any       `json:"metadata"`
}

// List returns every meeting belonging to the authenticated user.
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	meetings := h.db.ListMeetingsByUser(userID)
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	return c.JSON(meetings)
}

// Create stores a new meeting for the authenticated user. The owner is
// always taken from the session, never the body.
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var req createMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid meeting data", err)
	}
	if req.Title == "" {
		return utils.BadRequestError("Invalid meeting data", nil).WithContext("field", "title")
	}
	if req.StartTime == nil || req.EndTime == nil {
		return utils.BadRequestError("Invalid meeting data", nil).WithContext("field", "startTime/endTime")
	}

	meeting, err := h.db.CreateMeeting(models.Meeting{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   *req.StartTime,
		EndTime:     *req.EndTime,
		Location:    req.Location,
		MeetingURL:  req.MeetingURL,
		Source:      req.Source,
		SourceID:    req.SourceID,
		Status:      req.Status,
		Metadata:    req.Metadata,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidTimeRange) || errors.Is(err, storage.ErrInvalidStatus) {
			return utils.BadRequestError("Invalid meeting data", err)
		}
		return utils.InternalServerError("Failed to create meeting", err)
	}

	h.events.NotifyMeetingCreated(meeting)
	return c.Status(fiber.StatusCreated).JSON(meeting)
}

// Update applies a partial patch to an owned meeting. A status
// transition additionally creates one notification describing it.
func (h *MeetingHandler) Update(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}
	meetingID, err := ParamID(c)
	if err != nil {
		return err
	}

	meeting, err := h.db.GetMeeting(meetingID)
	if err != nil {
		return utils.NotFoundError("Meeting not found", err)
	}
	if meeting.UserID != userID {
		return utils.ForbiddenError("Not allowed to update this meeting", nil)
	}

	var patch models.MeetingPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestError("Invalid meeting data", err)
	}

	updated, err := h.db.UpdateMeeting(meetingID, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return utils.NotFoundError("Meeting not found", err)
		case errors.Is(err, storage.ErrInvalidTimeRange), errors.Is(err, storage.ErrInvalidStatus):
			return utils.BadRequestError("Invalid meeting data", err)
		}
		return utils.InternalServerError("Failed to update meeting", err)
	}

	if patch.Status != nil && *patch.Status != meeting.Status {
		h.notifyStatusChange(c, updated)
	}

	return c.JSON(updated)
}

// Delete removes an owned meeting.
func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}
	meetingID, err := ParamID(c)
	if err != nil {
		return err
	}

	meeting, err := h.db.GetMeeting(meetingID)
	if err != nil {
		return utils.NotFoundError("Meeting not found", err)
	}
	if meeting.UserID != userID {
		return utils.ForbiddenError("Not allowed to delete this meeting", nil)
	}

	h.db.DeleteMeeting(meetingID)
	return c.SendStatus(fiber.StatusNoContent)
}

// notifyStatusChange records exactly one notification for a status
// transition: the generated reminder for acceptances, a plain
// transition message otherwise.
func (h *MeetingHandler) notifyStatusChange(c *fiber.Ctx, meeting models.Meeting) {
	localizer := RequestLocalizer(c)

	var message string
	if meeting.Status == models.StatusAccepted {
		message = h.reminder.GenerateReminder(meeting, localizer)
	} else {
		message = utils.TWithData(localizer, "meeting_status_changed", map[string]interface{}{
			"Title":  meeting.Title,
			"Status": string(meeting.Status),
		})
	}

	notification, err := h.db.CreateNotification(models.Notification{
		UserID:    meeting.UserID,
		MeetingID: &meeting.ID,
		Message:   message,
	})
	if err != nil {
		utils.Log.Error("Failed to create notification for meeting %d: %v", meeting.ID, err)
		return
	}

	h.events.NotifyMeetingStatus(meeting)
	h.events.NotifyNotification(notification)
}
