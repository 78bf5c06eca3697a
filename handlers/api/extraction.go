package api

import (
	"context"
	"time"

	"meetminder/ai"
	"meetminder/models"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// ExtractionHandler serves the simulated AI extraction endpoints.
type ExtractionHandler struct {
	extractor ai.MeetingExtractor
}

// NewExtractionHandler creates an extraction handler over the given
// extractor implementation.
func NewExtractionHandler(extractor ai.MeetingExtractor) *ExtractionHandler {
	return &ExtractionHandler{extractor: extractor}
}

type extractionRequest struct {
	Content string `json:"content"`
}

// extractionResponse mirrors the meeting shape the client feeds into
// POST /api/meetings when the user confirms a detection.
type extractionResponse struct {
	Detected bool             `json:"detected"`
	Meeting  *detectedMeeting `json:"meeting,omitempty"`
}

type detectedMeeting struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartTime   string         `json:"startTime"`
	EndTime     string         `json:"endTime"`
	Location    *string        `json:"location"`
	MeetingURL  *string        `json:"meetingUrl"`
	Source      string         `json:"source"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata"`
}

// FromEmail scans posted email content for a meeting.
func (h *ExtractionHandler) FromEmail(c *fiber.Ctx) error {
	return h.extract(c, "email", h.extractor.ExtractFromEmail)
}

// FromChat scans posted chat messages for a meeting.
func (h *ExtractionHandler) FromChat(c *fiber.Ctx) error {
	return h.extract(c, "chat", h.extractor.ExtractFromChat)
}

func (h *ExtractionHandler) extract(c *fiber.Ctx, source string, fn func(ctx context.Context, content string) (*ai.ExtractedMeeting, error)) error {
	if _, err := CurrentUserID(c); err != nil {
		return err
	}

	var req extractionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}
	if req.Content == "" {
		return utils.BadRequestError("Content is required", nil)
	}

	extracted, err := fn(c.Context(), req.Content)
	if err != nil {
		return utils.InternalServerError("Failed to extract meeting information", err)
	}
	if extracted == nil {
		return c.JSON(extractionResponse{Detected: false})
	}

	return c.JSON(extractionResponse{
		Detected: true,
		Meeting: &detectedMeeting{
			Title:       extracted.Title,
			Description: extracted.Description,
			StartTime:   extracted.StartTime.Format(time.RFC3339),
			EndTime:     extracted.EndTime.Format(time.RFC3339),
			Location:    extracted.Location,
			MeetingURL:  extracted.MeetingURL,
			Source:      source,
			Status:      string(models.StatusPending),
			Metadata: map[string]any{
				"confidence": extracted.Confidence,
				"attendees":  extracted.Attendees,
			},
		},
	})
}
