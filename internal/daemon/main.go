// Package daemon starts the web service and the services behind it.
package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/signalfire/auto-featured/internal/cache"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/web"
	"github.com/signalfire/auto-featured/internal/web/session"
)

const sessionsTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	env        *Env
	webService *web.Service
}

// Start activates the default site unless it was uninstalled and serves until a
// shutdown signal arrives.
func (d *Daemon) Start(ctx context.Context) error {
	if _, err := d.env.Lifecycle.AutoActivate(ctx, models.DefaultSiteID); err != nil {
		return err
	}

	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.env.Cfg.Webserver.Port)
	log.Info().Str("addr", addr).Msg("starting web service")

	if err := d.webService.Start(addr); err != nil {
		return err
	}

	return d.env.Close()
}

// New creates a new Daemon instance with the provided configuration.
func New(env *Env) *Daemon {
	if env == nil {
		log.Fatal().Msg("env is nil")
		return nil
	}

	session.Init(cache.NewStorage(env.Cfg, sessionsTable))

	return &Daemon{
		env: env,
		webService: web.New(env.Cfg, web.Deps{
			DB:       env.DB,
			Settings: env.Lifecycle.Store(),
			Content:  env.Content,
			Library:  env.Library,
		}),
	}
}
