package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/blob"
	"github.com/signalfire/auto-featured/internal/config"
	mediactrl "github.com/signalfire/auto-featured/internal/db/controller/media"
	"github.com/signalfire/auto-featured/internal/db/models"
)

var (
	// ErrEmptyUpload is returned for uploads without content.
	ErrEmptyUpload = errors.New("upload is empty")
	// ErrUploadTooLarge is returned when an upload exceeds the configured size.
	ErrUploadTooLarge = errors.New("upload is too large")
	// ErrUnsupportedType is returned when the content type cannot be detected.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTypeNotAllowed is returned when the detected type is not in the allow list.
	ErrTypeNotAllowed = errors.New("file type is not allowed")
)

// Upload is a file added to the media library.
type Upload struct {
	Title   string
	AltText string
	Data    []byte
}

// Library stores uploads in a blob store and records them in the database.
type Library struct {
	db      *gorm.DB
	store   blob.Store
	baseURL string
	maxSize int
	allowed map[string]struct{}
	now     func() time.Time
}

// NewLibrary creates a media library from the media settings.
func NewLibrary(db *gorm.DB, store blob.Store, cfg config.Media) *Library {
	allowed := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, ext := range cfg.AllowedTypes {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &Library{
		db:      db,
		store:   store,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		maxSize: cfg.MaxUploadSize,
		allowed: allowed,
		now:     time.Now,
	}
}

// Add sniffs the upload, writes it to YYYY/MM/<id>.<ext> and records it for the site.
func (l *Library) Add(ctx context.Context, siteID uint64, u Upload) (*models.Media, error) {
	if len(u.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	if l.maxSize > 0 && len(u.Data) > l.maxSize {
		return nil, ErrUploadTooLarge
	}

	kind, err := filetype.Match(u.Data)
	if err != nil || kind == types.Unknown {
		return nil, ErrUnsupportedType
	}

	if !l.isAllowed(kind.Extension) {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotAllowed, kind.Extension)
	}

	id, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 16) //nolint: mnd
	if err != nil {
		return nil, fmt.Errorf("generate media key: %w", err)
	}

	key := path.Join(l.now().UTC().Format("2006/01"), id+"."+kind.Extension)

	if err := l.store.Put(ctx, key, u.Data, kind.MIME.Value); err != nil {
		return nil, err
	}

	m := &models.Media{
		SiteID:   siteID,
		Path:     key,
		GUID:     l.baseURL + "/" + key,
		MimeType: kind.MIME.Value,
		Title:    u.Title,
		AltText:  u.AltText,
		Size:     int64(len(u.Data)),
	}

	if err := mediactrl.Create(l.db.WithContext(ctx), m); err != nil {
		if derr := l.store.Delete(ctx, key); derr != nil {
			err = errors.Join(err, derr)
		}

		return nil, fmt.Errorf("record media %s: %w", key, err)
	}

	return m, nil
}

// URL returns the public URL of a media item.
func (l *Library) URL(m *models.Media) string {
	return l.baseURL + "/" + m.Path
}

func (l *Library) isAllowed(ext string) bool {
	if len(l.allowed) == 0 {
		return true
	}

	if _, ok := l.allowed[ext]; ok {
		return true
	}

	// filetype reports jpeg files as jpg
	_, ok := l.allowed["jpeg"]

	return ext == "jpg" && ok
}
