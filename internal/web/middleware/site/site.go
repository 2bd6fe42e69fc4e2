// Package site resolves the site a request belongs to from its host name.
package site

import (
	"errors"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	sitectrl "github.com/signalfire/auto-featured/internal/db/controller/site"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/web/handler"
)

// New returns a middleware storing the site id of the request host in fiber.Locals.
// Unknown hosts are served as the default site.
func New(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		siteID := models.DefaultSiteID

		host := hostname(c.Hostname())

		s, err := sitectrl.GetByDomain(db, host)

		switch {
		case err == nil:
			siteID = s.ID
		case !errors.Is(err, sitectrl.ErrSiteNotFound):
			log.Error().Err(err).Str("host", host).Msg("failed to resolve site")
		}

		c.Locals(handler.LocalsSiteID, siteID)

		return c.Next()
	}
}

// hostname drops the port of a host header value.
func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}

	return host
}
