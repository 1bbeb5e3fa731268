package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// RequireAuth guards admin write routes behind a cookie session. Handlers
// behind it can read the acting user's id from c.Locals("user_id").
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("❌ [AUTH] session lookup failed for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized - Please log in as admin",
			})
		}

		userID := sess.Get("user_id")
		if userID == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized - Please log in as admin",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// IsAuthenticated reports whether the request carries a logged-in session.
// Read endpoints use it to decide whether the publication gate applies.
func IsAuthenticated(store *session.Store, c *fiber.Ctx) bool {
	sess, err := store.Get(c)
	if err != nil {
		return false
	}
	return sess.Get("user_id") != nil
}
