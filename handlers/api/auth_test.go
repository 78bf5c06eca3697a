package api

import (
	"testing"

	"meetminder/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndCurrentUser(t *testing.T) {
	app, _, _ := newTestApp(t)

	user, cookies := register(t, app, "alice")
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "free", user.Plan)
	assert.Positive(t, user.ID)

	// Registration logs the user in.
	resp := doJSON(t, app, fiber.MethodGet, "/api/user", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var current models.User
	decodeJSON(t, resp, &current)
	assert.Equal(t, user.ID, current.ID)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	app, _, _ := newTestApp(t)

	register(t, app, "alice")

	resp := doJSON(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"username": "alice",
		"password": "other",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"username": "  ",
		"password": "",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	register(t, app, "alice")

	resp := doJSON(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": "alice",
		"password": "secret123",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = doJSON(t, app, fiber.MethodGet, "/api/user", nil, cookies)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": "alice",
		"password": "wrong",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"username": "nobody",
		"password": "secret123",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/meetings", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/user", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBearerTokenAuthentication(t *testing.T) {
	app, _, cfg := newTestApp(t)

	user, _ := register(t, app, "alice")

	token, err := GenerateToken(user.ID, user.Username, cfg.Auth.JWTSecret)
	require.NoError(t, err)

	req := newAuthorizedRequest(t, fiber.MethodGet, "/api/user", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = newAuthorizedRequest(t, fiber.MethodGet, "/api/user", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cookies := register(t, app, "alice")

	resp := doJSON(t, app, fiber.MethodPost, "/api/logout", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/user", nil, cookies)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
