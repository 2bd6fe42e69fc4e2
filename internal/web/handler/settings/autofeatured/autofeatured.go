// Package autofeatured provides the auto featured image settings page.
package autofeatured

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/content"
	settings "github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	"github.com/signalfire/auto-featured/internal/db/controller/media"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/web/handler"
	"github.com/signalfire/auto-featured/internal/web/navigation"
)

const (
	// Path is the path to the settings page.
	Path = handler.RootPath + "settings/auto-featured"

	// TemplateName is the name of the settings page template.
	TemplateName = "settings/auto-featured"

	// MsgSecurityCheckFailed is sent when the csrf token of a submission is missing or wrong.
	MsgSecurityCheckFailed = "Security check failed."

	fieldContentTypes = "enabled_content_types"
	fieldFallback     = "fallback_asset_id"
)

// Service is the settings page handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	store     *settings.Store
	types     *content.Types
	validator *validator.Validate
}

// Handler is the settings page handler.
var Handler = Service{}

// form is the raw settings form, sanitized before it is stored.
type form struct {
	EnabledContentTypes []string `form:"enabled_content_types"`
	FallbackAssetID     string   `form:"fallback_asset_id"`
}

// TypeOption is a content type checkbox.
type TypeOption struct {
	Name    string
	Label   string
	Checked bool
}

// ImageOption is an entry of the fallback image picker.
type ImageOption struct {
	ID       uint64
	URL      string
	Title    string
	Selected bool
}

// Init initializes the settings page handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authService *auth.Service,
	store *settings.Store,
	types *content.Types,
) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.store = store
	s.types = types
	s.validator = validator.New()

	protect := csrf.New(csrf.Config{
		KeyLookup:      "form:" + handler.CSRFFormField,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   !cfg.DevMode,
		CookieHTTPOnly: true,
		Expiration:     time.Hour,
		ContextKey:     handler.LocalsCSRFToken,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Warn().Err(err).Str("path", c.Path()).Msg("csrf check failed")

			return c.Status(fiber.StatusForbidden).SendString(MsgSecurityCheckFailed)
		},
	})

	// register routes with permission checks
	app.Get(Path,
		auth.RequirePermission(authService, auth.PermAdminSettings),
		protect,
		s.Get,
	)
	app.Post(Path,
		auth.RequirePermission(authService, auth.PermAdminSettings),
		protect,
		s.Post,
	)
}

// Get handles the settings page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	current, err := s.store.Load(handler.SiteID(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to load auto featured settings")

		return s.render(c, fiber.StatusInternalServerError, settings.Settings{}, "Failed to load settings.")
	}

	return s.render(c, fiber.StatusOK, current, "")
}

// Post handles the settings form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var (
		f      form
		siteID = handler.SiteID(c)
	)

	if err := c.BodyParser(&f); err != nil {
		return s.render(c, fiber.StatusBadRequest, settings.Settings{}, "Invalid form data.")
	}

	submitted := settings.Sanitize(f.EnabledContentTypes, f.FallbackAssetID)

	if err := s.validator.Struct(submitted); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return s.render(c, fiber.StatusBadRequest, submitted, validationMessage(validationErrs))
		}

		return s.render(c, fiber.StatusBadRequest, submitted, "Invalid settings.")
	}

	if err := s.store.Save(siteID, submitted); err != nil {
		log.Error().Err(err).Uint64("site", siteID).Msg("failed to save auto featured settings")

		return s.render(c, fiber.StatusInternalServerError, submitted, "Failed to save settings.")
	}

	log.Info().
		Uint64("site", siteID).
		Strs("types", submitted.EnabledContentTypes).
		Msg("auto featured settings saved")

	return c.Redirect(Path + "?updated=1")
}

func (s *Service) render(c *fiber.Ctx, status int, current settings.Settings, errMsg string) error {
	siteID := handler.SiteID(c)
	fallbackID, _ := current.Fallback()

	nav := navigation.NewContext("Auto Featured Image", "settings", "auto-featured").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Settings", "#", false).
		AddBreadcrumb("Auto Featured Image", Path, true)

	if has, ok := c.Locals("hasPermission").(func(string) bool); ok {
		nav.WithMenu(has)
	}

	types := make([]TypeOption, 0)
	for _, t := range s.types.Public() {
		types = append(types, TypeOption{Name: t.Name, Label: t.Label, Checked: current.Enabled(t.Name)})
	}

	images, fallback := s.imageOptions(siteID, fallbackID)

	user, _ := auth.CurrentUser(c)

	return c.Status(status).Render(TemplateName, fiber.Map{
		"Title":         s.cfg.Title,
		"Navigation":    nav,
		"CurrentUser":   user,
		"Types":         types,
		"Images":        images,
		"Fallback":      fallback,
		"FallbackID":    fallbackID,
		"CSRF":          handler.CSRFToken(c),
		"CSRFField":     handler.CSRFFormField,
		"FieldTypes":    fieldContentTypes,
		"FieldFallback": fieldFallback,
		"Updated":       c.Query("updated") == "1",
		"error":         errMsg,
	}, handler.BaseLayout)
}

// imageOptions lists the image library and the preview of the current fallback.
func (s *Service) imageOptions(siteID, fallbackID uint64) ([]ImageOption, *ImageOption) {
	items, err := media.List(s.db, siteID, true)
	if err != nil {
		log.Error().Err(err).Uint64("site", siteID).Msg("failed to list images")
	}

	var (
		options  = make([]ImageOption, 0, len(items))
		fallback *ImageOption
	)

	for i := range items {
		opt := s.imageOption(&items[i], fallbackID)
		options = append(options, opt)

		if opt.Selected {
			fallback = &opt
		}
	}

	// the fallback may not be an image of this list, e.g. it was set by id
	if fallback == nil && fallbackID > 0 {
		if m, err := media.Get(s.db, siteID, fallbackID); err == nil {
			opt := s.imageOption(m, fallbackID)
			fallback = &opt
		}
	}

	return options, fallback
}

func (s *Service) imageOption(m *models.Media, fallbackID uint64) ImageOption {
	title := m.Title
	if title == "" {
		title = m.Path
	}

	return ImageOption{
		ID:       m.ID,
		URL:      strings.TrimRight(s.cfg.Media.BaseURL, "/") + "/" + m.Path,
		Title:    title,
		Selected: m.ID == fallbackID,
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.Tag() {
		case "max":
			msgs = append(msgs, fmt.Sprintf("Content type %v is too long.", e.Value()))
		default:
			msgs = append(msgs, e.Namespace()+" is invalid.")
		}
	}

	return strings.Join(msgs, " ")
}
