package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingMiddleware_SetsTraceHeaderAndLocals(t *testing.T) {
	app := fiber.New()
	app.Use(TracingMiddleware())

	var traceID string
	app.Get("/api/ideas/:id", func(c *fiber.Ctx) error {
		traceID, _ = c.Locals("traceID").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ideas/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, traceID, resp.Header.Get("X-Trace-ID"))
}
