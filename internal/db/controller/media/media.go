// Package media provides the database operations on the media library.
package media

import (
	"errors"

	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/db/models"
)

const siteQueryPattern = "site_id = ?"

var (
	// ErrMediaNotFound is returned when a media item is not found.
	ErrMediaNotFound = errors.New("media not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func first(q *gorm.DB) (*models.Media, error) {
	var m models.Media
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}

		return nil, err
	}

	return &m, nil
}

// Create stores a new media item.
func Create(db *gorm.DB, m *models.Media) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(m).Error
}

// Get retrieves a media item of a site by id.
func Get(db *gorm.DB, siteID, id uint64) (*models.Media, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return first(db.Where(siteQueryPattern, siteID).Where("id = ?", id))
}

// FindByPath retrieves a media item of a site by its path relative to the media base URL.
func FindByPath(db *gorm.DB, siteID uint64, path string) (*models.Media, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return first(db.Where(siteQueryPattern, siteID).Where("path = ?", path))
}

// FindByGUID retrieves a media item of a site by the URL it was uploaded under.
func FindByGUID(db *gorm.DB, siteID uint64, guid string) (*models.Media, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return first(db.Where(siteQueryPattern, siteID).Where("guid = ?", guid))
}

// List returns the media of a site, newest first. With imagesOnly set only images are returned.
func List(db *gorm.DB, siteID uint64, imagesOnly bool) ([]models.Media, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Where(siteQueryPattern, siteID)
	if imagesOnly {
		q = q.Where("mime_type LIKE ?", "image/%")
	}

	var items []models.Media
	if err := q.Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}
