package web

import (
	"meetminder/config"
	"meetminder/dashboard"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// DashboardHandler renders the meeting dashboard page.
type DashboardHandler struct {
	store  *session.Store
	config *config.Config
	db     *storage.Store
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store *session.Store, cfg *config.Config, db *storage.Store) *DashboardHandler {
	return &DashboardHandler{
		store:  store,
		config: cfg,
		db:     db,
	}
}

// HandleDashboard shows today's schedule and the pending approvals for
// the logged-in user.
func (h *DashboardHandler) HandleDashboard(c *fiber.Ctx) error {
	userID, ok := h.sessionUserID(c)
	if !ok {
		return c.Redirect("/login")
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		// Stale session referencing a deleted user.
		return c.Redirect("/login")
	}

	board := dashboard.NewBoard(h.db.ListMeetingsByUser(userID))
	localizer, _ := c.Locals("localizer").(*i18n.Localizer)
	if localizer == nil {
		localizer = utils.Localizer
	}

	return c.Render("dashboard", fiber.Map{
		"User":            user,
		"TodayMeetings":   board.Today(),
		"PendingMeetings": board.Pending(),
		"TodayTitle":      utils.T(localizer, "today_schedule"),
		"PendingTitle":    utils.T(localizer, "pending_approvals"),
	})
}

func (h *DashboardHandler) sessionUserID(c *fiber.Ctx) (int, bool) {
	sess, err := h.store.Get(c)
	if err != nil {
		return 0, false
	}
	if sess.Get("authenticated") != true {
		return 0, false
	}
	userID, ok := sess.Get("userId").(int)
	return userID, ok && userID > 0
}
