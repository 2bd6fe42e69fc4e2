// Package models contains database model definitions.
package models

// Setting represents a named option stored per site.
type Setting struct {
	ID     uint64 `gorm:"primaryKey"`
	SiteID uint64 `gorm:"uniqueIndex:idx_settings_site_name;not null;default:1"`
	Name   string `gorm:"uniqueIndex:idx_settings_site_name;size:191;not null"`
	Value  []byte
}
