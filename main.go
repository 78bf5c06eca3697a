package main

import (
	"fmt"
	"time"

	"meetminder/ai"
	"meetminder/config"
	"meetminder/handlers/api"
	"meetminder/handlers/web"
	"meetminder/middleware"
	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/crypto/bcrypt"
)

// Helper function to determine if request is an API request
func isAPIRequest(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}
	path := c.Path()
	return len(path) >= 4 && path[:4] == "/api"
}

func main() {
	utils.Log.Info("Initializing MeetMinder...")

	// Load configuration
	cfg, err := config.LoadConfig("config.toml")
	if err != nil {
		utils.Log.Error("Failed to load config: %v", err)
		return
	}
	utils.Log.SetLevel(utils.ParseLevel(cfg.Server.LogLevel))

	// Initialize i18n system
	if err := utils.InitI18n(); err != nil {
		utils.Log.Error("Failed to initialize i18n: %v", err)
	}

	// The whole datastore is one in-memory store handed to every
	// handler. Sessions live in their own in-memory TTL storage.
	db := storage.New()
	sessionStorage := storage.NewSessionStorage()
	store := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     cfg.SessionExpiry(),
		CookieHTTPOnly: true,
	})

	if cfg.Demo.Seed {
		if err := seedDemoData(cfg, db); err != nil {
			utils.Log.Error("Failed to seed demo data: %v", err)
		}
	}

	// Template engine for the server-rendered pages
	engine := html.New("./templates", ".html")
	engine.AddFunc("formatDate", func(t time.Time) string {
		return t.Format("Jan 02, 2006 15:04")
	})
	engine.AddFunc("formatTime", func(t time.Time) string {
		return t.Format("15:04")
	})

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			if appErr, ok := err.(*utils.AppError); ok {
				code = appErr.Code
				if code >= 500 {
					utils.Log.Error("Application error: %v", appErr)
				}
			} else if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			if isAPIRequest(c) {
				return c.Status(code).JSON(fiber.Map{
					"message": err.Error(),
				})
			}

			return c.Status(code).Render("error", fiber.Map{
				"Error": err.Error(),
				"Code":  code,
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	}))
	app.Use(middleware.LocaleMiddleware())
	app.Use(middleware.RateLimiter(100, time.Minute))

	// Domain capabilities: the keyword extractor is the demo stand-in
	// for a real inference backend.
	extractor := ai.NewKeywordExtractor(cfg.ProcessingDelay())
	reminder := ai.NewTemplateReminder()
	events := api.NewEventBroker()

	// API handlers
	authHandler := api.NewAuthHandler(store, cfg, db)
	meetingHandler := api.NewMeetingHandler(db, events, reminder)
	sourceHandler := api.NewSourceHandler(db)
	notificationHandler := api.NewNotificationHandler(db)
	aiSettingsHandler := api.NewAiSettingsHandler(db)
	extractionHandler := api.NewExtractionHandler(extractor)
	i18nHandler := &api.I18nHandler{}

	// Web handlers
	webAuthHandler := web.NewAuthHandler(store, cfg, db)
	dashboardHandler := web.NewDashboardHandler(store, cfg, db)

	// Public web routes
	app.Get("/login", webAuthHandler.ShowLogin)
	app.Post("/login", middleware.CSRFProtection(), webAuthHandler.HandleLogin)
	app.Get("/logout", webAuthHandler.HandleLogout)
	app.Get("/", dashboardHandler.HandleDashboard)

	// Public API routes
	app.Post("/api/register", authHandler.Register)
	app.Post("/api/login", authHandler.Login)
	app.Post("/api/logout", authHandler.Logout)
	app.Get("/api/i18n/:lang", i18nHandler.GetTranslations)

	// Protected API routes
	apiRoutes := app.Group("/api", api.SessionMiddleware(store, cfg))
	{
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

		apiRoutes.Get("/events", events.HandleSSE)
		apiRoutes.Get("/events/ws", websocket.New(events.HandleWebSocket))
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 404 Handler for undefined routes
	app.Use(func(c *fiber.Ctx) error {
		localizer := api.RequestLocalizer(c)
		if isAPIRequest(c) {
			return c.Status(404).JSON(fiber.Map{
				"message": utils.T(localizer, "error_404"),
			})
		}
		return c.Status(404).Render("error", fiber.Map{
			"Error": utils.T(localizer, "error_404"),
			"Code":  404,
		})
	})

	utils.Log.Info("Starting server on port %d...", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		utils.Log.Error("Error starting server: %v", err)
	}
}

// seedDemoData creates the demo account, its linked sources, and a few
// meetings so the dashboard has content on first run.
func seedDemoData(cfg *config.Config, db *storage.Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fullName := "Demo User"
	user, err := db.CreateUser(models.User{
		Username:     cfg.Demo.Username,
		PasswordHash: string(hash),
		FullName:     &fullName,
	})
	if err != nil {
		return err
	}

	if _, err := db.CreateEmailSource(models.EmailSource{
		UserID: user.ID, Provider: "gmail", Email: "demo@example.com", Active: true,
	}); err != nil {
		return err
	}
	if _, err := db.CreateChatSource(models.ChatSource{
		UserID: user.ID, Provider: "slack", Username: "demo", Active: true,
	}); err != nil {
		return err
	}

	now := time.Now()
	today := func(hour int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.Local)
	}

	samples := []models.Meeting{
		{
			UserID:      user.ID,
			Title:       "Weekly Team Sync",
			Description: ptr("Discuss progress on the MeetMinder project"),
			StartTime:   today(10),
			EndTime:     today(11),
			Status:      models.StatusAccepted,
			Location:    ptr("Conference Room A"),
			Source:      ptr("email"),
			SourceID:    ptr("1"),
			Metadata:    map[string]any{"attendees": []string{"john@example.com", "sarah@example.com"}},
		},
		{
			UserID:      user.ID,
			Title:       "Client Presentation",
			Description: ptr("Present the new design mockups"),
			StartTime:   today(14),
			EndTime:     today(15),
			Status:      models.StatusAccepted,
			Location:    ptr("Zoom Meeting"),
			MeetingURL:  ptr("https://zoom.us/j/123456789"),
			Source:      ptr("email"),
			SourceID:    ptr("2"),
			Metadata:    map[string]any{"attendees": []string{"client@example.com", "design@example.com"}},
		},
		{
			UserID:      user.ID,
			Title:       "Project Review",
			Description: ptr("Review the project timeline and milestones"),
			StartTime:   today(9).AddDate(0, 0, 1),
			EndTime:     today(10).AddDate(0, 0, 1),
			Status:      models.StatusPending,
			Location:    ptr("Microsoft Teams"),
			MeetingURL:  ptr("https://teams.microsoft.com/l/meetup-join/123"),
			Source:      ptr("chat"),
			SourceID:    ptr("3"),
			Metadata:    map[string]any{"attendees": []string{"team@example.com", "manager@example.com"}},
		},
		{
			UserID:      user.ID,
			Title:       "Product Demo",
			Description: ptr("Demo the new features to the stakeholders"),
			StartTime:   today(13).AddDate(0, 0, 2),
			EndTime:     today(14).AddDate(0, 0, 2),
			Status:      models.StatusPending,
			Location:    ptr("Conference Room B"),
			Source:      ptr("email"),
			SourceID:    ptr("4"),
			Metadata:    map[string]any{"attendees": []string{"stakeholder@example.com", "product@example.com"}},
		},
	}
	for _, meeting := range samples {
		if _, err := db.CreateMeeting(meeting); err != nil {
			return err
		}
	}

	utils.Log.Info("Seeded demo user %q with %d meetings", user.Username, len(samples))
	return nil
}

func ptr(s string) *string { return &s }
