// Package media resolves image URLs to media ids and stores uploads in the media library.
package media

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/db/controller/media"
	"github.com/signalfire/auto-featured/internal/extractor"
	"github.com/signalfire/auto-featured/internal/logger"
)

// Resolver maps URLs below the media base URL back to media ids.
type Resolver struct {
	db      *gorm.DB
	baseURL string
	log     zerolog.Logger
}

// NewResolver creates a Resolver for the given media base URL.
func NewResolver(db *gorm.DB, baseURL string) *Resolver {
	return &Resolver{
		db:      db,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger.Component("media-resolver"),
	}
}

// ForSite returns an extractor.Resolver bound to the media of one site.
func (r *Resolver) ForSite(siteID uint64) extractor.Resolver {
	return extractor.ResolverFunc(func(ctx context.Context, url string) uint64 {
		return r.Resolve(ctx, siteID, url)
	})
}

// Resolve returns the id of the media url points at, 0 if there is none.
// The upload path below the base URL is tried first, then the URL the file was uploaded under.
func (r *Resolver) Resolve(ctx context.Context, siteID uint64, url string) uint64 {
	if url == "" {
		return 0
	}

	db := r.db.WithContext(ctx)

	if path, ok := r.relativePath(url); ok {
		m, err := media.FindByPath(db, siteID, path)
		if err == nil {
			return m.ID
		}

		if !errors.Is(err, media.ErrMediaNotFound) {
			r.log.Error().Err(err).Str("url", url).Msg("media path lookup failed")

			return 0
		}
	}

	if !strings.Contains(url, r.baseURL) {
		return 0
	}

	m, err := media.FindByGUID(db, siteID, url)
	if err != nil {
		if !errors.Is(err, media.ErrMediaNotFound) {
			r.log.Error().Err(err).Str("url", url).Msg("media guid lookup failed")
		}

		return 0
	}

	return m.ID
}

// relativePath strips the base URL, ignoring a scheme mismatch, query and fragment.
func (r *Resolver) relativePath(url string) (string, bool) {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	base := stripScheme(r.baseURL) + "/"
	rest := stripScheme(url)

	if !strings.HasPrefix(rest, base) {
		return "", false
	}

	path := strings.TrimPrefix(rest, base)

	return path, path != ""
}

func stripScheme(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[i+3:]
	}

	return strings.TrimPrefix(u, "//")
}
