package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	coreauth "github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/web/handler/login"
	"github.com/signalfire/auto-featured/internal/web/session"
)

// publicPrefixes are served without login.
var publicPrefixes = []string{"/static", "/uploads", "/checkalive", "/metrics", "/logout"}

// Middleware is a Fiber middleware that checks for user authentication.
// Pages redirect to the login page, API requests get 401.
func Middleware(c *fiber.Ctx) error {
	originalURL := strings.ToLower(c.OriginalURL())

	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(originalURL, prefix) {
			return c.Next()
		}
	}

	isLoginPage := IsLoginPage(c)

	sessData := new(session.Data)
	if err := sessData.Read(c.Cookies(session.CookieName)); err != nil || sessData.User.ID == 0 {
		switch {
		case isLoginPage:
			return c.Next()
		case IsAPI(c):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		default:
			return c.Redirect(login.Path)
		}
	}

	c.Locals(coreauth.LocalsCurrentUser, sessData.User)

	if isLoginPage {
		return c.Redirect(login.HomePath)
	}

	return c.Next()
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.OriginalURL()), login.Path)
}

// IsAPI checks if the current request targets the JSON API.
func IsAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.OriginalURL()), "/api/")
}
