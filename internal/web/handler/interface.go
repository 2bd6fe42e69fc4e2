package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/db/models"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}

// SiteID returns the site the request belongs to. Requests without site use the default site.
func SiteID(c *fiber.Ctx) uint64 {
	if id, ok := c.Locals(LocalsSiteID).(uint64); ok && id > 0 {
		return id
	}

	return models.DefaultSiteID
}

// CSRFToken returns the csrf token of the request, empty when the route is not protected.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalsCSRFToken).(string)

	return token
}
