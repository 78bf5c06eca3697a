package api

import (
	"errors"
	"strings"

	"meetminder/config"
	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler manages registration, login, and the session lifecycle.
type AuthHandler struct {
	store  *session.Store
	config *config.Config
	db     *storage.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(store *session.Store, cfg *config.Config, db *storage.Store) *AuthHandler {
	return &AuthHandler{
		store:  store,
		config: cfg,
		db:     db,
	}
}

type credentialsRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"fullName"`
}

// Register creates an account and logs the new user in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return utils.BadRequestError("Username and password are required", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError("Failed to hash password", err)
	}

	user, err := h.db.CreateUser(models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return utils.BadRequestError("Username already exists", err)
		}
		return utils.InternalServerError("Failed to create user", err)
	}

	if err := h.createSession(c, user); err != nil {
		return err
	}

	utils.Log.Info("User registered: %s (id=%d)", user.Username, user.ID)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}

	user, err := h.db.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return utils.UnauthorizedError("Invalid username or password", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return utils.UnauthorizedError("Invalid username or password", nil)
	}

	if err := h.createSession(c, user); err != nil {
		return err
	}

	utils.Log.Info("User logged in: %s", user.Username)
	return c.JSON(user)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return utils.InternalServerError("Failed to destroy session", err)
		}
	}
	return c.SendStatus(fiber.StatusOK)
}

// CurrentUser returns the authenticated user.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		return utils.UnauthorizedError("Session user no longer exists", err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) createSession(c *fiber.Ctx, user models.User) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return utils.InternalServerError("Session error", err)
	}

	token, err := GenerateToken(user.ID, user.Username, h.config.Auth.JWTSecret)
	if err != nil {
		return utils.InternalServerError("Failed to create authentication token", err)
	}

	sess.Set("authenticated", true)
	sess.Set("userId", user.ID)
	sess.Set("username", user.Username)
	sess.Set("token", token)
	sess.SetExpiry(h.config.SessionExpiry())

	if err := sess.Save(); err != nil {
		return utils.InternalServerError("Failed to save session", err)
	}
	return nil
}

// SessionMiddleware guards the API routes. It accepts either an
// authenticated cookie session or a bearer token issued at login, and
// stores the user id in the request context.
func SessionMiddleware(store *session.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err == nil {
			if auth, ok := sess.Get("authenticated").(bool); ok && auth {
				if userID, ok := sess.Get("userId").(int); ok && userID > 0 {
					c.Locals("userId", userID)
					return c.Next()
				}
			}
		}

		header := c.Get(fiber.HeaderAuthorization)
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			userID, err := ValidateToken(token, cfg.Auth.JWTSecret)
			if err == nil && userID > 0 {
				c.Locals("userId", userID)
				return c.Next()
			}
		}

		return utils.UnauthorizedError("Unauthorized", nil)
	}
}
