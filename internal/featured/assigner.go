// Package featured assigns a featured image to posts when they are saved.
package featured

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	"github.com/signalfire/auto-featured/internal/db/controller/post"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/extractor"
	"github.com/signalfire/auto-featured/internal/logger"
)

// SettingsLoader loads the settings record of a site.
type SettingsLoader interface {
	Load(siteID uint64) (autofeatured.Settings, error)
}

// SiteResolver returns the image URL resolver of a site.
type SiteResolver interface {
	ForSite(siteID uint64) extractor.Resolver
}

// Assigner decides on save whether and which featured image a post gets.
type Assigner struct {
	db       *gorm.DB
	settings SettingsLoader
	resolver SiteResolver
	log      zerolog.Logger
}

// NewAssigner creates an Assigner.
func NewAssigner(db *gorm.DB, settings SettingsLoader, resolver SiteResolver) *Assigner {
	return &Assigner{
		db:       db,
		settings: settings,
		resolver: resolver,
		log:      logger.Component("featured"),
	}
}

// Hook matches content.Hook so the assigner can be registered with OnSave.
func (a *Assigner) Hook(ctx context.Context, p *models.Post) {
	a.Assign(ctx, p)
}

// Assign runs the decision for a saved post and returns the outcome.
// Errors are logged and never reach the caller.
func (a *Assigner) Assign(ctx context.Context, p *models.Post) string {
	outcome := a.assign(ctx, p)
	assignmentCounter().WithLabelValues(outcome).Inc()

	return outcome
}

func (a *Assigner) assign(ctx context.Context, p *models.Post) string {
	if p.IsAutosave() || p.IsRevision() {
		return OutcomeSkipped
	}

	settings, err := a.settings.Load(p.SiteID)
	if err != nil {
		a.log.Error().Err(err).Uint64("site", p.SiteID).Msg("can't load settings")

		return OutcomeSkipped
	}

	if !settings.Enabled(p.Type) {
		return OutcomeSkipped
	}

	if p.HasFeaturedImage() {
		return OutcomeSkipped
	}

	if id, ok := extractor.FirstImage(ctx, p.Body, a.resolver.ForSite(p.SiteID)); ok {
		return a.set(ctx, p, id, OutcomeContent)
	}

	if id, ok := settings.Fallback(); ok {
		return a.set(ctx, p, id, OutcomeFallback)
	}

	return OutcomeNone
}

func (a *Assigner) set(ctx context.Context, p *models.Post, mediaID uint64, source string) string {
	if err := post.SetFeatured(a.db.WithContext(ctx), p.ID, mediaID); err != nil {
		a.log.Error().Err(err).Uint64("post", p.ID).Uint64("image", mediaID).Msg("can't assign featured image")

		return OutcomeNone
	}

	p.FeaturedMediaID = &mediaID

	a.log.Debug().
		Uint64("post", p.ID).
		Uint64("image", mediaID).
		Str("source", source).
		Msg("featured image assigned")

	return source
}
