package models

import "time"

// DefaultSiteID is the id of the site created on first start.
const DefaultSiteID uint64 = 1

// Site is one tenant of a multi-site deployment.
// Settings, posts and media are all scoped to a site.
type Site struct {
	ID        uint64 `gorm:"primaryKey"`
	Domain    string `gorm:"unique;size:191;not null"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
