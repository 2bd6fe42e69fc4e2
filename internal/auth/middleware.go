package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/web/session"
)

const (
	// LocalsCurrentUser is the fiber.Locals key of the logged in user.
	LocalsCurrentUser = "CurrentUser"

	// MsgForbidden is sent when the user lacks the permission of a page.
	MsgForbidden = "You do not have sufficient permissions to access this page."
)

// CurrentUser returns the logged in user, taken from fiber.Locals or the session cookie.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	if u, ok := c.Locals(LocalsCurrentUser).(models.User); ok && u.ID > 0 {
		return u, true
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(c.Cookies(session.CookieName)); err != nil {
		return models.User{}, false
	}

	if sessionData.User.ID == 0 {
		return models.User{}, false
	}

	return sessionData.User, true
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasPermission(user.ID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).Str("permission", permission).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", user.ID).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString(MsgForbidden)
		}

		return c.Next()
	}
}

// AddPermissionsToLocals is a Fiber middleware that adds user permissions to fiber.Locals.
// This allows templates to access permissions for conditional rendering.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Next()
		}

		permissions, err := authService.GetUserPermissions(user.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", user.ID).
				Msg("Failed to get user permissions")

			return c.Next()
		}

		c.Locals("permissions", permissions)
		c.Locals("hasPermission", HasPermissionFunc(permissions))

		return c.Next()
	}
}

// HasPermissionFunc returns a lookup over an already loaded permission list.
func HasPermissionFunc(permissions []string) func(string) bool {
	return func(perm string) bool {
		for _, p := range permissions {
			if p == perm {
				return true
			}
		}

		return false
	}
}
