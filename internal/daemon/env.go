package daemon

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/blob"
	"github.com/signalfire/auto-featured/internal/cache"
	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/content"
	"github.com/signalfire/auto-featured/internal/db"
	"github.com/signalfire/auto-featured/internal/db/controller/site"
	"github.com/signalfire/auto-featured/internal/featured"
	"github.com/signalfire/auto-featured/internal/lifecycle"
	"github.com/signalfire/auto-featured/internal/media"
)

const (
	optionsTable  = "options_cache"
	optionsPrefix = "option:"
)

// Env holds the services shared by the web service and the maintenance commands.
type Env struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Cache     *cache.Cache // nil when the engine has no storage shared between processes
	Lifecycle *lifecycle.Manager
	Content   *content.Service
	Library   *media.Library
	Resolver  *media.Resolver
	Assigner  *featured.Assigner
}

// Open connects the database, makes sure the default site and the admin account exist
// and wires the content service with the featured image assigner.
func Open(ctx context.Context, cfg *config.Config) (*Env, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if _, err = site.EnsureDefault(conn, cfg.Webserver.Domain, cfg.Title); err != nil {
		return nil, fmt.Errorf("ensure default site: %w", err)
	}

	if err = seed(conn); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	store, err := blob.New(ctx, cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	var optionCache *cache.Cache
	if cache.Shared(cfg) {
		optionCache = cache.New(cache.NewStorage(cfg, optionsTable), optionsPrefix, 0)
	}

	manager := lifecycle.New(conn, optionCache)

	resolver := media.NewResolver(conn, cfg.Media.BaseURL)
	assigner := featured.NewAssigner(conn, manager.Store(), resolver)

	svc := content.NewService(conn, cfg.Content)
	svc.OnSave(assigner.Hook)

	return &Env{
		Cfg:       cfg,
		DB:        conn,
		Cache:     optionCache,
		Lifecycle: manager,
		Content:   svc,
		Library:   media.NewLibrary(conn, store, cfg.Media),
		Resolver:  resolver,
		Assigner:  assigner,
	}, nil
}

// Close releases the database connection.
func (e *Env) Close() error {
	sqlDB, err := e.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
