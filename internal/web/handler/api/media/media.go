// Package media provides the JSON API of the media library.
package media

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/auth"
	mediactrl "github.com/signalfire/auto-featured/internal/db/controller/media"
	"github.com/signalfire/auto-featured/internal/db/models"
	medialib "github.com/signalfire/auto-featured/internal/media"
	"github.com/signalfire/auto-featured/internal/web/handler"
)

// Path is the path of the media API.
const Path = handler.RootPath + "api/media"

// Item is a media library entry as returned by the API.
type Item struct {
	models.Media
	URL string `json:"url"`
}

// Service is the media API handler service.
type Service struct {
	db      *gorm.DB
	library *medialib.Library
}

// Handler is the media API handler.
var Handler = Service{}

// Init initializes the media API handler.
func (s *Service) Init(app *fiber.App, db *gorm.DB, authService *auth.Service, library *medialib.Library) {
	if app == nil || db == nil || library == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.library = library

	app.Post(Path, auth.RequirePermission(authService, auth.PermMediaUpload), s.Upload)
	app.Get(Path, auth.RequirePermission(authService, auth.PermMediaRead), s.List)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// Upload adds the multipart file field "file" to the media library.
func (s *Service) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "file is missing")
	}

	f, err := fh.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "can't read upload")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "can't read upload")
	}

	title := c.FormValue("title")
	if title == "" {
		title = fh.Filename
	}

	m, err := s.library.Add(c.UserContext(), handler.SiteID(c), medialib.Upload{
		Title:   title,
		AltText: c.FormValue("alt"),
		Data:    data,
	})

	switch {
	case errors.Is(err, medialib.ErrUploadTooLarge):
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, medialib.ErrEmptyUpload),
		errors.Is(err, medialib.ErrUnsupportedType),
		errors.Is(err, medialib.ErrTypeNotAllowed):
		return errorJSON(c, fiber.StatusUnsupportedMediaType, err.Error())
	case err != nil:
		log.Error().Err(err).Str("file", fh.Filename).Msg("upload failed")

		return errorJSON(c, fiber.StatusInternalServerError, "upload failed")
	}

	return c.Status(fiber.StatusCreated).JSON(Item{Media: *m, URL: s.library.URL(m)})
}

// List returns the media of the current site. images=true lists images only.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := mediactrl.List(s.db.WithContext(c.UserContext()), handler.SiteID(c), c.QueryBool("images"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list media")

		return errorJSON(c, fiber.StatusInternalServerError, "failed to list media")
	}

	out := make([]Item, 0, len(items))
	for i := range items {
		out = append(out, Item{Media: items[i], URL: s.library.URL(&items[i])})
	}

	return c.JSON(out)
}
