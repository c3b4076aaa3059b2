package middleware

import (
	"github.com/crossbox/wodtracker/internal/services"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/types"
	"github.com/gofiber/fiber/v2"
)

// UserKey is the Locals key holding the authenticated *models.User.
const UserKey = "user"

// AuthRequired resolves the session cookie to a user and stores it in the
// request context. Missing or stale sessions get 401; ownership checks
// happen later, in the handlers.
func AuthRequired(sessions *services.SessionManager, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(services.SessionCookie)
		if token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication required",
				Type:    "auth",
			}
		}

		userID, ok := sessions.Resolve(token)
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired session",
				Type:    "auth",
			}
		}

		// Session may outlive the account.
		user, err := st.GetUser(userID)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusInternalServerError,
				Message: "Failed to load user",
				Type:    "auth",
			}
		}
		if user == nil {
			sessions.Destroy(token)
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired session",
				Type:    "auth",
			}
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}
