package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		// Check if it's readable in handler (from response body)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace unsafe request id", func(t *testing.T) {
		for _, bad := range []string{"gate 1 level=error", strings.Repeat("a", 65), "ticket;drop"} {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)

			resp, err := app.Test(req)
			assert.NoError(t, err)

			got := resp.Header.Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			_, perr := uuid.Parse(got)
			assert.NoError(t, perr)
		}
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	// Logger usually depends on RequestID for request_id field
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	// Verify log output
	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLogger_ServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.FixedZone("ICT", 7*3600)))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	assert.NoError(t, err)

	var logData map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, "error", logData["level"])
	assert.Equal(t, float64(fiber.StatusBadGateway), logData["status"])
	assert.Contains(t, logData["ts"], "+07:00")
}

func TestRequireAdmin(t *testing.T) {
	verify := func(token string) (string, error) {
		if token == "good" {
			return "operator", nil
		}
		return "", errors.New("invalid token")
	}
	deny := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusUnauthorized) }

	app := fiber.New()
	app.Use(RequireAdmin(verify, deny))
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(AdminLocalKey).(string))
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: fiber.StatusUnauthorized},
		{name: "bad token", header: "Bearer bad", want: fiber.StatusUnauthorized},
		{name: "good token", header: "Bearer good", want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == fiber.StatusOK {
				buf := new(bytes.Buffer)
				buf.ReadFrom(resp.Body)
				assert.Equal(t, "operator", buf.String())
			}
		})
	}
}

func TestOptionalAdmin(t *testing.T) {
	verify := func(token string) (string, error) {
		if token == "good" {
			return "operator", nil
		}
		return "", errors.New("invalid token")
	}
	deny := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusUnauthorized) }

	app := fiber.New()
	app.Use(OptionalAdmin(verify, deny))
	app.Get("/register", func(c *fiber.Ctx) error {
		if username, ok := AdminFrom(c); ok {
			return c.SendString(username)
		}
		return c.SendString("anonymous")
	})

	tests := []struct {
		name   string
		header string
		want   int
		body   string
	}{
		{name: "no header passes anonymously", header: "", want: fiber.StatusOK, body: "anonymous"},
		{name: "good token", header: "Bearer good", want: fiber.StatusOK, body: "operator"},
		{name: "bad token is not downgraded", header: "Bearer bad", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/register", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.body != "" {
				buf := new(bytes.Buffer)
				buf.ReadFrom(resp.Body)
				assert.Equal(t, tt.body, buf.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst then reject", func(t *testing.T) {
		l := NewRateLimiter(1, 3)
		now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		for i := 0; i < 3; i++ {
			assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
		}
		assert.False(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.2"), "other clients have their own bucket")

		now = now.Add(time.Second)
		assert.True(t, l.Allow("10.0.0.1"), "one token refilled after a second")
	})

	t.Run("idle visitors are swept", func(t *testing.T) {
		l := NewRateLimiter(1, 1)
		now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		l.Allow("a")
		now = now.Add(time.Hour)
		l.Allow("b")

		assert.Len(t, l.visitors, 1)
	})

	t.Run("handler answers 429", func(t *testing.T) {
		l := NewRateLimiter(0.001, 2)
		app := fiber.New()
		app.Use(l.Handler(func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTooManyRequests) }))
		app.Post("/gate/guest/checkout", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("POST", "/gate/guest/checkout", nil))
			assert.NoError(t, err)
			codes = append(codes, resp.StatusCode)
		}

		assert.Equal(t, []int{200, 200, 429}, codes)
	})
}
