package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminLocalKey stores the verified admin username in Fiber's context locals.
const AdminLocalKey = "admin_username"

// TokenVerifier validates a bearer token and returns the admin username.
type TokenVerifier func(token string) (username string, err error)

// RequireAdmin rejects requests without a valid "Authorization: Bearer" token.
// deny writes the rejection so the response matches the API's failure envelope.
func RequireAdmin(verify TokenVerifier, deny func(c *fiber.Ctx) error) fiber.Handler {
	return adminGuard(verify, deny, false)
}

// OptionalAdmin lets requests without an Authorization header through
// anonymously. A header that is present must carry a valid token.
func OptionalAdmin(verify TokenVerifier, deny func(c *fiber.Ctx) error) fiber.Handler {
	return adminGuard(verify, deny, true)
}

// AdminFrom returns the username set by RequireAdmin or OptionalAdmin.
func AdminFrom(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(AdminLocalKey).(string)
	return username, ok
}

func adminGuard(verify TokenVerifier, deny func(c *fiber.Ctx) error, anonymous bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" && anonymous {
			return c.Next()
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return deny(c)
		}
		username, err := verify(strings.TrimSpace(token))
		if err != nil {
			return deny(c)
		}
		c.Locals(AdminLocalKey, username)
		return c.Next()
	}
}
