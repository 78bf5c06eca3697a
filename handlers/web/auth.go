package web

import (
	"strings"

	"meetminder/config"
	"meetminder/middleware"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves the server-rendered login flow.
type AuthHandler struct {
	store  *session.Store
	config *config.Config
	db     *storage.Store
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(store *session.Store, cfg *config.Config, db *storage.Store) *AuthHandler {
	return &AuthHandler{
		store:  store,
		config: cfg,
		db:     db,
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if sess.Get("authenticated") == true {
			return c.Redirect("/")
		}
	}
	return c.Render("login", fiber.Map{
		"CSRFToken": middleware.GenerateCSRFToken(c),
	})
}

// HandleLogin processes the login form
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Status(500).SendString("Session error")
	}

	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	if username == "" || password == "" {
		return c.Status(400).Render("login", fiber.Map{
			"Error":     "Username and password are required",
			"Username":  username,
			"CSRFToken": middleware.GenerateCSRFToken(c),
		})
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return c.Status(401).Render("login", fiber.Map{
			"Error":     "Invalid username or password",
			"Username":  username,
			"CSRFToken": middleware.GenerateCSRFToken(c),
		})
	}

	sess.Set("authenticated", true)
	sess.Set("userId", user.ID)
	sess.Set("username", user.Username)
	sess.SetExpiry(h.config.SessionExpiry())

	if err := sess.Save(); err != nil {
		return c.Status(500).Render("login", fiber.Map{
			"Error":     "Failed to create session",
			"Username":  username,
			"CSRFToken": middleware.GenerateCSRFToken(c),
		})
	}

	utils.Log.Info("Web login: %s", user.Username)
	return c.Redirect("/")
}

// HandleLogout destroys the session and returns to the login page.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		return c.Status(500).SendString("Error during logout")
	}
	return c.Redirect("/login")
}
