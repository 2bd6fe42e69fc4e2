// Package site provides the database operations on sites (tenants).
package site

import (
	"errors"

	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/db/models"
)

var (
	// ErrSiteNotFound is returned when a site is not found.
	ErrSiteNotFound = errors.New("site not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List returns every site ordered by id.
func List(db *gorm.DB) ([]models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sites []models.Site
	if err := db.Order("id").Find(&sites).Error; err != nil {
		return nil, err
	}

	return sites, nil
}

// Get retrieves a site by id.
func Get(db *gorm.DB, id uint64) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Site
	if err := db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}

		return nil, err
	}

	return &s, nil
}

// GetByDomain retrieves a site by its domain.
func GetByDomain(db *gorm.DB, domain string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Site
	if err := db.Where("domain = ?", domain).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}

		return nil, err
	}

	return &s, nil
}

// EnsureDefault creates the default site if the table is empty.
func EnsureDefault(db *gorm.DB, domain, name string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Site
	if err := db.Where("id = ?", models.DefaultSiteID).
		Attrs(models.Site{ID: models.DefaultSiteID, Domain: domain, Name: name}).
		FirstOrCreate(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// Create adds a site.
func Create(db *gorm.DB, domain, name string) (*models.Site, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	s := models.Site{Domain: domain, Name: name}
	if err := db.Create(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}
