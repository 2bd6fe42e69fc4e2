// Package post provides the database operations on content items.
package post

import (
	"errors"

	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/db/models"
)

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a post by id.
func Get(db *gorm.DB, id uint64) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Post
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, err
	}

	return &p, nil
}

// Save inserts p when it has no id yet, otherwise updates every column.
func Save(db *gorm.DB, p *models.Post) error {
	if db == nil {
		return ErrDBNil
	}

	if p.Kind == "" {
		p.Kind = models.PostKindCanonical
	}

	return db.Save(p).Error
}

// HasFeatured reports whether the stored post has a featured image.
func HasFeatured(db *gorm.DB, id uint64) (bool, error) {
	p, err := Get(db, id)
	if err != nil {
		return false, err
	}

	return p.HasFeaturedImage(), nil
}

// SetFeatured assigns mediaID as featured image of the post.
func SetFeatured(db *gorm.DB, id, mediaID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Post{}).Where("id = ?", id).Update("featured_media_id", mediaID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// ListCanonical returns the canonical posts of a site, optionally only of the given types.
func ListCanonical(db *gorm.DB, siteID uint64, types []string) ([]models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Where("site_id = ? AND kind = ?", siteID, models.PostKindCanonical)
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}

	var posts []models.Post
	if err := q.Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}

	return posts, nil
}

// FindByGUID returns the canonical post of a site with the given GUID.
func FindByGUID(db *gorm.DB, siteID uint64, guid string) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Post

	err := db.Where("site_id = ? AND guid = ? AND kind = ?", siteID, guid, models.PostKindCanonical).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

// FindChild returns the newest revision or autosave of a post.
func FindChild(db *gorm.DB, parentID uint64, kind models.PostKind) (*models.Post, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Post

	err := db.Where("parent_id = ? AND kind = ?", parentID, kind).Order("id DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CountChildren counts the revisions or autosaves of a post.
func CountChildren(db *gorm.DB, parentID uint64, kind models.PostKind) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	err := db.Model(&models.Post{}).Where("parent_id = ? AND kind = ?", parentID, kind).Count(&n).Error

	return n, err
}
