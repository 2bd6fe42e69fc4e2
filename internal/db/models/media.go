package models

import "time"

// Media is an uploaded file in the media library.
type Media struct {
	ID     uint64 `gorm:"primaryKey"               json:"id"`
	SiteID uint64 `gorm:"index;not null;default:1" json:"siteId"`
	// Path is relative to the media base URL, e.g. 2026/10/abc123.jpg.
	Path string `gorm:"size:255;index;not null" json:"path"`
	// GUID is the public URL the file had when it was uploaded.
	GUID      string    `gorm:"size:255;index" json:"guid"`
	MimeType  string    `gorm:"size:100"       json:"mimeType"`
	Title     string    `gorm:"size:255"       json:"title"`
	AltText   string    `gorm:"size:255"       json:"altText"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsImage reports whether the media is an image.
func (m *Media) IsImage() bool {
	return len(m.MimeType) > 6 && m.MimeType[:6] == "image/"
}
