// Package lifecycle seeds and removes the auto featured settings of sites.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/cache"
	"github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	"github.com/signalfire/auto-featured/internal/db/controller/setting"
	"github.com/signalfire/auto-featured/internal/db/controller/site"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/logger"
)

// UninstalledKey names the installation wide marker written by Uninstall.
// It lives on the default site and is removed by an explicit Activate.
const UninstalledKey = "auto_featured_uninstalled"

// Manager runs the activate, deactivate and uninstall steps.
type Manager struct {
	db    *gorm.DB
	store *autofeatured.Store
	cache *cache.Cache
	log   zerolog.Logger
}

// New creates a Manager. c may be nil when no option cache is used.
func New(db *gorm.DB, c *cache.Cache) *Manager {
	return &Manager{
		db:    db,
		store: autofeatured.NewStore(db, c),
		cache: c,
		log:   logger.Component("lifecycle"),
	}
}

// Activate seeds the default settings of a site unless it already has a record.
// It reports whether the record was created.
func (m *Manager) Activate(ctx context.Context, siteID uint64) (bool, error) {
	if _, err := site.Get(m.db.WithContext(ctx), siteID); err != nil {
		return false, fmt.Errorf("activate site %d: %w", siteID, err)
	}

	defaults := autofeatured.Defaults()

	created, err := defaults.Create(m.db.WithContext(ctx), siteID)
	if err != nil {
		return false, fmt.Errorf("seed settings of site %d: %w", siteID, err)
	}

	if err = m.clearUninstalled(ctx); err != nil {
		return false, err
	}

	m.log.Info().Uint64("site", siteID).Bool("seeded", created).Msg("activated")

	return created, nil
}

// AutoActivate is Activate for service start: after an uninstall it does nothing,
// the settings stay removed until activate is run again.
func (m *Manager) AutoActivate(ctx context.Context, siteID uint64) (bool, error) {
	uninstalled, err := m.Uninstalled(ctx)
	if err != nil {
		return false, err
	}

	if uninstalled {
		m.log.Info().Uint64("site", siteID).Msg("uninstalled, skipping activation")
		return false, nil
	}

	return m.Activate(ctx, siteID)
}

// Uninstalled reports whether Uninstall ran after the last Activate.
func (m *Manager) Uninstalled(ctx context.Context) (bool, error) {
	_, err := setting.Get(m.db.WithContext(ctx), models.DefaultSiteID, UninstalledKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, setting.ErrSettingNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("read uninstall marker: %w", err)
	}
}

func (m *Manager) clearUninstalled(ctx context.Context) error {
	err := setting.DeleteByName(m.db.WithContext(ctx), models.DefaultSiteID, UninstalledKey)
	if err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		return fmt.Errorf("clear uninstall marker: %w", err)
	}

	return nil
}

// Deactivate keeps the settings. It only logs.
func (m *Manager) Deactivate(_ context.Context, siteID uint64) {
	m.log.Info().Uint64("site", siteID).Msg("deactivated")
}

// Uninstall removes the settings record of the current site, then of every other site,
// marks the installation as uninstalled and flushes the option cache.
func (m *Manager) Uninstall(ctx context.Context, currentSiteID uint64) error {
	db := m.db.WithContext(ctx)
	store := autofeatured.NewStore(db, m.cache)

	if err := store.Delete(currentSiteID); err != nil {
		return fmt.Errorf("delete settings of site %d: %w", currentSiteID, err)
	}

	sites, err := site.List(db)
	if err != nil {
		return fmt.Errorf("list sites: %w", err)
	}

	for _, s := range sites {
		if s.ID == currentSiteID {
			continue
		}

		if err := store.Delete(s.ID); err != nil {
			return fmt.Errorf("delete settings of site %d: %w", s.ID, err)
		}
	}

	stamp := []byte(time.Now().UTC().Format(time.RFC3339))
	if _, err := setting.Set(db, models.DefaultSiteID, UninstalledKey, stamp); err != nil {
		return fmt.Errorf("write uninstall marker: %w", err)
	}

	if m.cache != nil {
		if err := m.cache.Flush(); err != nil {
			return fmt.Errorf("flush option cache: %w", err)
		}
	}

	m.log.Info().Int("sites", len(sites)).Msg("uninstalled")

	return nil
}

// Store returns the settings store used by the manager.
func (m *Manager) Store() *autofeatured.Store {
	return m.store
}
