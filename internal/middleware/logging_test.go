package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"startupconnect/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correlationApp(withRequestID bool) *fiber.App {
	app := fiber.New()
	if withRequestID {
		app.Use(requestid.New())
	}
	app.Use(ContextMiddleware())
	app.Use(TracingMiddleware())
	app.Get("/api/ideas", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		traceID, _ := ctx.Value(TraceIDKey).(string)
		c.Set("X-Context-Trace", traceID)
		return c.SendString(observability.ExtractCorrelationID(ctx))
	})
	return app
}

func TestContextMiddleware_CorrelationIDFollowsRequestID(t *testing.T) {
	app := correlationApp(true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ideas", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	requestID := resp.Header.Get(fiber.HeaderXRequestID)
	require.NotEmpty(t, requestID)
	assert.Equal(t, requestID, string(body))
	assert.Equal(t, resp.Header.Get("X-Trace-ID"), resp.Header.Get("X-Context-Trace"))
}

func TestContextMiddleware_GeneratesCorrelationIDWithoutRequestID(t *testing.T) {
	app := correlationApp(false)

	var ids []string
	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ideas", nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.NotEmpty(t, body)
		ids = append(ids, string(body))
	}
	assert.NotEqual(t, ids[0], ids[1])
}

func TestIsProbe(t *testing.T) {
	assert.True(t, isProbe("/health"))
	assert.True(t, isProbe("/health/ready"))
	assert.True(t, isProbe("/metrics"))
	assert.False(t, isProbe("/healthcheck"))
	assert.False(t, isProbe("/api/ideas"))
}
