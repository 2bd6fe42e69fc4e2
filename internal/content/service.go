// Package content saves content items and runs the save hooks.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/db/controller/post"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/logger"
)

var (
	// ErrUnknownType is returned when a post has an unregistered content type.
	ErrUnknownType = errors.New("unknown content type")
	// ErrNotCanonical is returned when a snapshot is passed where a post is expected.
	ErrNotCanonical = errors.New("post is not canonical")
)

// Hook runs synchronously after a post or one of its snapshots was stored.
// Hooks can not fail the save.
type Hook func(ctx context.Context, p *models.Post)

// Service stores posts, their revisions and autosaves.
type Service struct {
	db        *gorm.DB
	types     *Types
	revisions bool
	hooks     []Hook
	log       zerolog.Logger
}

// NewService creates a content service.
func NewService(db *gorm.DB, cfg config.Content) *Service {
	return &Service{
		db:        db,
		types:     NewTypes(cfg.Types),
		revisions: cfg.Revisions,
		log:       logger.Component("content"),
	}
}

// Types returns the content type registry.
func (s *Service) Types() *Types {
	return s.types
}

// OnSave registers a hook run after every stored post, revision and autosave.
func (s *Service) OnSave(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Get returns a post by id.
func (s *Service) Get(ctx context.Context, id uint64) (*models.Post, error) {
	return post.Get(s.db.WithContext(ctx), id)
}

// Save stores the canonical post p and, if enabled, a revision snapshot of it.
func (s *Service) Save(ctx context.Context, p *models.Post) error {
	if _, ok := s.types.Get(p.Type); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownType, p.Type)
	}

	if p.Kind != "" && p.Kind != models.PostKindCanonical {
		return ErrNotCanonical
	}

	if p.SiteID == 0 {
		p.SiteID = models.DefaultSiteID
	}

	if p.Status == "" {
		p.Status = "draft"
	}

	p.Kind = models.PostKindCanonical

	if err := post.Save(s.db.WithContext(ctx), p); err != nil {
		return fmt.Errorf("save post: %w", err)
	}

	s.log.Debug().Uint64("post", p.ID).Str("type", p.Type).Msg("post saved")

	if s.revisions {
		rev := snapshot(p, models.PostKindRevision)

		if err := post.Save(s.db.WithContext(ctx), rev); err != nil {
			return fmt.Errorf("save revision of post %d: %w", p.ID, err)
		}

		s.run(ctx, rev)
	}

	s.run(ctx, p)

	return nil
}

// Autosave stores p as the autosave of its canonical post, replacing an older autosave.
// The canonical post itself is left untouched.
func (s *Service) Autosave(ctx context.Context, p *models.Post) (*models.Post, error) {
	db := s.db.WithContext(ctx)

	parent, err := post.Get(db, p.ID)
	if err != nil {
		return nil, err
	}

	if parent.Kind != models.PostKindCanonical {
		return nil, ErrNotCanonical
	}

	merged := *parent
	merged.Title = p.Title
	merged.Body = p.Body

	auto := snapshot(&merged, models.PostKindAutosave)

	existing, err := post.FindChild(db, parent.ID, models.PostKindAutosave)

	switch {
	case err == nil:
		auto.ID = existing.ID
		auto.CreatedAt = existing.CreatedAt
	case !errors.Is(err, post.ErrPostNotFound):
		return nil, err
	}

	if err := post.Save(db, auto); err != nil {
		return nil, fmt.Errorf("save autosave of post %d: %w", parent.ID, err)
	}

	s.run(ctx, auto)

	return auto, nil
}

func (s *Service) run(ctx context.Context, p *models.Post) {
	for _, h := range s.hooks {
		h(ctx, p)
	}
}

func snapshot(p *models.Post, kind models.PostKind) *models.Post {
	parent := p.ID

	return &models.Post{
		SiteID:          p.SiteID,
		Type:            p.Type,
		Kind:            kind,
		Title:           p.Title,
		Body:            p.Body,
		Status:          "inherit",
		ParentID:        &parent,
		FeaturedMediaID: p.FeaturedMediaID,
	}
}
