package autofeatured

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/cache"
	"github.com/signalfire/auto-featured/internal/db/controller/setting"
)

// Store reads settings records through the option cache.
type Store struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewStore creates a Store. A nil cache reads straight from the database.
func NewStore(db *gorm.DB, c *cache.Cache) *Store {
	return &Store{db: db, cache: c}
}

// Load returns the settings record of a site.
// A site without record gets an empty record: nothing enabled, no fallback.
func (s *Store) Load(siteID uint64) (Settings, error) {
	var out Settings

	key := cache.Key(siteID, SettingKey)

	if s.cache != nil {
		err := s.cache.Get(key, &out)
		if err == nil {
			return out, nil
		}

		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Uint64("site", siteID).Msg("option cache read failed, using database")
		}
	}

	if err := out.Load(s.db, siteID); err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return Settings{}, nil
		}

		return Settings{}, err
	}

	s.remember(key, out)

	return out, nil
}

// Save rewrites the settings record of a site and drops its cache entry.
func (s *Store) Save(siteID uint64, settings Settings) error {
	if err := settings.Save(s.db, siteID); err != nil {
		return err
	}

	s.forget(siteID)

	return nil
}

// Delete removes the settings record of a site and its cache entry.
func (s *Store) Delete(siteID uint64) error {
	if err := Delete(s.db, siteID); err != nil {
		return err
	}

	s.forget(siteID)

	return nil
}

func (s *Store) remember(key string, settings Settings) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(key, settings); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("option cache write failed")
	}
}

func (s *Store) forget(siteID uint64) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(cache.Key(siteID, SettingKey)); err != nil {
		log.Warn().Err(err).Uint64("site", siteID).Msg("option cache delete failed")
	}
}
