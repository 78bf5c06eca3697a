package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetminder/ai"
	"meetminder/config"
	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the API routes the way main.go does, minus the web
// pages and the streaming endpoints, over a fresh in-memory store.
func newTestApp(t *testing.T) (*fiber.App, *storage.Store, *config.Config) {
	t.Helper()

	require.NoError(t, utils.InitI18n())

	cfg := config.Defaults()
	cfg.AI.ProcessingDelayMs = 0

	db := storage.New()
	sessionStorage := storage.NewSessionStorage()
	t.Cleanup(func() { sessionStorage.Close() })

	store := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     cfg.SessionExpiry(),
		CookieHTTPOnly: true,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if appErr, ok := err.(*utils.AppError); ok {
				code = appErr.Code
			} else if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	extractor := ai.NewKeywordExtractorWithClock(0, time.Now, 1)
	events := NewEventBroker()

	authHandler := NewAuthHandler(store, cfg, db)
	meetingHandler := NewMeetingHandler(db, events, ai.NewTemplateReminder())
	sourceHandler := NewSourceHandler(db)
	notificationHandler := NewNotificationHandler(db)
	aiSettingsHandler := NewAiSettingsHandler(db)
	extractionHandler := NewExtractionHandler(extractor)

	app.Post("/api/register", authHandler.Register)
	app.Post("/api/login", authHandler.Login)
	app.Post("/api/logout", authHandler.Logout)

	apiRoutes := app.Group("/api", SessionMiddleware(store, cfg))
	apiRoutes.Get("/user", authHandler.CurrentUser)
	apiRoutes.Get("/meetings", meetingHandler.List)
	apiRoutes.Post("/meetings", meetingHandler.Create)
	apiRoutes.Patch("/meetings/:id", meetingHandler.Update)
	apiRoutes.Delete("/meetings/:id", meetingHandler.Delete)
	apiRoutes.Get("/email-sources", sourceHandler.ListEmailSources)
	apiRoutes.Post("/email-sources", sourceHandler.CreateEmailSource)
	apiRoutes.Delete("/email-sources/:id", sourceHandler.DeleteEmailSource)
	apiRoutes.Get("/chat-sources", sourceHandler.ListChatSources)
	apiRoutes.Post("/chat-sources", sourceHandler.CreateChatSource)
	apiRoutes.Delete("/chat-sources/:id", sourceHandler.DeleteChatSource)
	apiRoutes.Get("/notifications", notificationHandler.List)
	apiRoutes.Patch("/notifications/:id/read", notificationHandler.MarkRead)
	apiRoutes.Get("/ai-settings", aiSettingsHandler.Get)
	apiRoutes.Patch("/ai-settings", aiSettingsHandler.Update)
	apiRoutes.Post("/extract-meeting-from-email", extractionHandler.FromEmail)
	apiRoutes.Post("/extract-meeting-from-chat", extractionHandler.FromChat)

	return app, db, cfg
}

// doJSON sends a JSON request through the app and returns the
// response. A nil body sends no payload.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func newAuthorizedRequest(t *testing.T, method, path, authorization string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, authorization)
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// register creates a user through the API and returns the user plus
// the session cookies set by the auto-login.
func register(t *testing.T, app *fiber.App, username string) (models.User, []*http.Cookie) {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"username": username,
		"password": "secret123",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	var user models.User
	decodeJSON(t, resp, &user)
	return user, cookies
}

// createMeeting posts a minimal valid meeting and returns it.
func createMeeting(t *testing.T, app *fiber.App, cookies []*http.Cookie, title string) models.Meeting {
	t.Helper()

	start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	resp := doJSON(t, app, fiber.MethodPost, "/api/meetings", fiber.Map{
		"title":     title,
		"startTime": start.Format(time.RFC3339),
		"endTime":   start.Add(time.Hour).Format(time.RFC3339),
	}, cookies)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var meeting models.Meeting
	decodeJSON(t, resp, &meeting)
	return meeting
}
