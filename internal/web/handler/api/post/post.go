// Package post provides the JSON API for creating, autosaving and reading posts.
package post

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/content"
	postctrl "github.com/signalfire/auto-featured/internal/db/controller/post"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/web/handler"
)

// Path is the path of the posts API.
const Path = handler.RootPath + "api/posts"

// Request is the body of POST /api/posts. Omitted fields keep their stored value on update.
type Request struct {
	ID              uint64  `json:"id"`
	Type            string  `json:"type"            validate:"omitempty,max=20"`
	Title           *string `json:"title"           validate:"omitempty,max=255"`
	Body            *string `json:"body"`
	Status          string  `json:"status"          validate:"omitempty,oneof=draft publish pending private"`
	FeaturedMediaID *uint64 `json:"featuredMediaId"`
	Autosave        bool    `json:"autosave"`
}

// Service is the posts API handler service.
type Service struct {
	content   *content.Service
	validator *validator.Validate
}

// Handler is the posts API handler.
var Handler = Service{}

// Init initializes the posts API handler.
func (s *Service) Init(app *fiber.App, authService *auth.Service, svc *content.Service) {
	if app == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.content = svc
	s.validator = validator.New()

	app.Post(Path, auth.RequirePermission(authService, auth.PermPostEdit), s.Save)
	app.Get(Path+"/:id", auth.RequirePermission(authService, auth.PermPostRead), s.Get)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// Get returns a post of the current site.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid post id")
	}

	p, err := s.load(c, id)
	if err != nil {
		return loadError(c, id, err)
	}

	return c.JSON(p)
}

// Save creates or updates a post. With autosave=true only an autosave is stored.
func (s *Service) Save(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	if req.Autosave || c.QueryBool("autosave") {
		return s.autosave(c, req)
	}

	p := &models.Post{SiteID: handler.SiteID(c), Type: "post"}
	status := fiber.StatusCreated

	if req.ID > 0 {
		stored, err := s.load(c, req.ID)
		if err != nil {
			return loadError(c, req.ID, err)
		}

		p = stored
		status = fiber.StatusOK
	}

	apply(p, req)

	if err := s.content.Save(c.UserContext(), p); err != nil {
		if errors.Is(err, content.ErrUnknownType) || errors.Is(err, content.ErrNotCanonical) {
			return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
		}

		log.Error().Err(err).Uint64("post", p.ID).Msg("failed to save post")

		return errorJSON(c, fiber.StatusInternalServerError, "failed to save post")
	}

	return c.Status(status).JSON(p)
}

func (s *Service) autosave(c *fiber.Ctx, req *Request) error {
	if req.ID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "autosave needs the id of a saved post")
	}

	stored, err := s.load(c, req.ID)
	if err != nil {
		return loadError(c, req.ID, err)
	}

	apply(stored, req)

	auto, err := s.content.Autosave(c.UserContext(), stored)
	if err != nil {
		if errors.Is(err, content.ErrNotCanonical) {
			return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
		}

		log.Error().Err(err).Uint64("post", req.ID).Msg("failed to autosave post")

		return errorJSON(c, fiber.StatusInternalServerError, "failed to autosave post")
	}

	return c.JSON(auto)
}

// load returns a post of the current site.
func (s *Service) load(c *fiber.Ctx, id uint64) (*models.Post, error) {
	p, err := s.content.Get(c.UserContext(), id)
	if err != nil {
		return nil, err
	}

	if p.SiteID != handler.SiteID(c) {
		return nil, postctrl.ErrPostNotFound
	}

	return p, nil
}

func loadError(c *fiber.Ctx, id uint64, err error) error {
	if errors.Is(err, postctrl.ErrPostNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "post not found")
	}

	log.Error().Err(err).Uint64("post", id).Msg("failed to load post")

	return errorJSON(c, fiber.StatusInternalServerError, "failed to load post")
}

func apply(p *models.Post, req *Request) {
	if req.Type != "" {
		p.Type = req.Type
	}

	if req.Title != nil {
		p.Title = *req.Title
	}

	if req.Body != nil {
		p.Body = *req.Body
	}

	if req.Status != "" {
		p.Status = req.Status
	}

	if req.FeaturedMediaID != nil {
		if *req.FeaturedMediaID == 0 {
			p.FeaturedMediaID = nil
		} else {
			id := *req.FeaturedMediaID
			p.FeaturedMediaID = &id
		}
	}
}
