package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/content"
	settings "github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	fiberlogger "github.com/signalfire/auto-featured/internal/logger/adapter/fiber"
	medialib "github.com/signalfire/auto-featured/internal/media"
	mediaapi "github.com/signalfire/auto-featured/internal/web/handler/api/media"
	postapi "github.com/signalfire/auto-featured/internal/web/handler/api/post"
	"github.com/signalfire/auto-featured/internal/web/handler/login"
	"github.com/signalfire/auto-featured/internal/web/handler/logout"
	"github.com/signalfire/auto-featured/internal/web/handler/settings/autofeatured"
	authmiddleware "github.com/signalfire/auto-featured/internal/web/middleware/auth"
	sitemiddleware "github.com/signalfire/auto-featured/internal/web/middleware/site"
)

// CheckAlivePath is the load balancer health check.
const CheckAlivePath = "/checkalive"

// Deps are the domain services the web handlers work on.
type Deps struct {
	DB       *gorm.DB
	Settings *settings.Store
	Content  *content.Service
	Library  *medialib.Library
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and stops the web service gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// checkAlive answers 200 while the service accepts traffic, 503 while shutting down.
func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if deps.DB == nil || deps.Settings == nil || deps.Content == nil || deps.Library == nil {
		panic("web dependencies cannot be nil")
	}

	templateEngine := html.NewFileSystem(templateFileSystem(), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("year", func() int {
		return time.Now().Year()
	})

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "auto-featured",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			BodyLimit:      bodyLimit(cfg),
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:            cfg.Log,
		CacheControlError: fiberlogger.ConfigDefault.CacheControlError,
		CheckAliveURI:     CheckAlivePath,
	}))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// uploads of the local media driver, s3 serves its own urls
	if cfg.Media.Driver == "" || cfg.Media.Driver == "local" {
		app.Static("/uploads", cfg.Media.Path, fiber.Static{Browse: false})
	}

	authService := auth.NewService(deps.DB)

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          deps.DB,
		authService: authService,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)

	if cfg.Webserver.MetricsPath != "" {
		app.Get(cfg.Webserver.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Use(sitemiddleware.New(deps.DB))
	app.Use(authmiddleware.Middleware)
	app.Use(auth.AddPermissionsToLocals(authService))

	// init handlers (they register their own routes with permission checks)
	if err := login.Handler.Init(app, cfg, deps.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	autofeatured.Handler.Init(app, cfg, deps.DB, authService, deps.Settings, deps.Content.Types())
	postapi.Handler.Init(app, authService, deps.Content)
	mediaapi.Handler.Init(app, deps.DB, authService, deps.Library)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(login.HomePath)
	})

	return service
}

// bodyLimit leaves room for the multipart envelope around the largest upload.
func bodyLimit(cfg *config.Config) int {
	const envelope = 1 << 20

	if cfg.Media.MaxUploadSize <= 0 {
		return fiber.DefaultBodyLimit
	}

	return cfg.Media.MaxUploadSize + envelope
}
