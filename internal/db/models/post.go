package models

import "time"

// PostKind tells a canonical post apart from its stored snapshots.
type PostKind string

const (
	// PostKindCanonical is the saved version of a post.
	PostKindCanonical PostKind = "canonical"
	// PostKindRevision is a snapshot stored alongside each canonical save.
	PostKindRevision PostKind = "revision"
	// PostKindAutosave is a transient draft written by the editor.
	PostKindAutosave PostKind = "autosave"
)

// Post is a content item of any content type.
type Post struct {
	ID     uint64   `gorm:"primaryKey"                               json:"id"`
	SiteID uint64   `gorm:"index;not null;default:1"                 json:"siteId"`
	Type   string   `gorm:"size:20;index;not null;default:'post'"    json:"type"`
	Kind   PostKind `gorm:"size:20;not null;default:'canonical'"     json:"kind"`
	Title  string   `gorm:"size:255"                                 json:"title"`
	Body   string   `gorm:"type:text"                                json:"body"`
	Status string   `gorm:"size:20;not null;default:'draft'"         json:"status"`
	// ParentID points revisions and autosaves at their canonical post.
	ParentID *uint64 `gorm:"index" json:"parentId,omitempty"`
	// FeaturedMediaID is the featured image, nil when none is assigned.
	FeaturedMediaID *uint64   `json:"featuredMediaId,omitempty"`
	GUID            string    `gorm:"size:255;index" json:"guid,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsRevision reports whether p is a revision snapshot.
func (p *Post) IsRevision() bool {
	return p.Kind == PostKindRevision
}

// IsAutosave reports whether p is an autosave.
func (p *Post) IsAutosave() bool {
	return p.Kind == PostKindAutosave
}

// HasFeaturedImage reports whether a featured image is assigned.
func (p *Post) HasFeaturedImage() bool {
	return p.FeaturedMediaID != nil && *p.FeaturedMediaID > 0
}
