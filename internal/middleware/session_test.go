package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"startupconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	user *models.User
}

func (f fakeSession) CurrentUser() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

func TestSessionRequired(t *testing.T) {
	tests := []struct {
		name           string
		session        fakeSession
		expectedStatus int
		expectedUserID string
	}{
		{
			name:           "Signed in",
			session:        fakeSession{user: &models.User{ID: "3", Name: "Maya Patel"}},
			expectedStatus: http.StatusOK,
			expectedUserID: "3",
		},
		{
			name:           "Signed out",
			session:        fakeSession{},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/me", SessionRequired(tt.session), func(c *fiber.Ctx) error {
				u, ok := SessionUser(c)
				require.True(t, ok)
				assert.Equal(t, u.ID, c.UserContext().Value(UserIDKey))
				return c.JSON(fiber.Map{"userID": c.Locals("userID")})
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedUserID, body["userID"])
			} else {
				assert.Equal(t, models.MsgNotLoggedIn, body["error"])
				assert.Equal(t, models.CodeUnauthorized, body["code"])
			}
		})
	}
}

func TestPublicOnly(t *testing.T) {
	handler := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }

	app := fiber.New()
	app.Post("/login-out", PublicOnly(fakeSession{}), handler)
	app.Post("/login-in", PublicOnly(fakeSession{user: &models.User{ID: "1"}}), handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login-out", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login-in", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSessionUser_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := SessionUser(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
