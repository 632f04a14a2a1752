package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"controlcompass/internal/db"
	"controlcompass/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	store *session.Store
	db    *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(store *session.Store, db *db.DB) *AuthMiddleware {
	return &AuthMiddleware{store: store, db: db}
}

// RequireAuth ensures the request carries a valid session. The user is
// loaded fresh from the database so role changes take effect immediately.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return unauthorized(c)
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return unauthorized(c)
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err != nil {
		sess.Destroy()
		return unauthorized(c)
	}

	c.Locals("user", user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return c.Next()
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return c.Next()
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err == nil {
		c.Locals("user", user)
	}

	return c.Next()
}

// RequireAdmin ensures the authenticated user holds the ADMIN role. Must
// run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return unauthorized(c)
	}
	if !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "admin access required",
		})
	}
	return c.Next()
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error",
		"error":  "unauthorized",
	})
}
