// Package autofeatured stores the per-site auto featured image settings record.
package autofeatured

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/db/controller/setting"
)

const (
	// SettingKey is the key used to store the settings record in the option store.
	SettingKey = "auto_featured"

	// DefaultContentType is enabled on activation.
	DefaultContentType = "post"
)

// Settings is the auto featured image settings record of one site.
type Settings struct {
	EnabledContentTypes []string `json:"enabledContentTypes" validate:"dive,required,max=20"`
	// FallbackAssetID is assigned when no image in the content resolves. Nil means no fallback.
	FallbackAssetID *uint64 `json:"fallbackAssetId,omitempty" validate:"omitempty,gt=0"`
}

// Defaults returns the record seeded on activation.
func Defaults() Settings {
	return Settings{
		EnabledContentTypes: []string{DefaultContentType},
	}
}

// Enabled reports whether contentType participates in auto assignment.
func (s *Settings) Enabled(contentType string) bool {
	for _, t := range s.EnabledContentTypes {
		if t == contentType {
			return true
		}
	}

	return false
}

// Fallback returns the fallback asset id, if one is configured.
func (s *Settings) Fallback() (uint64, bool) {
	if s.FallbackAssetID == nil || *s.FallbackAssetID == 0 {
		return 0, false
	}

	return *s.FallbackAssetID, true
}

// Load loads the settings record of a site from the database.
func (s *Settings) Load(db *gorm.DB, siteID uint64) error {
	stored, err := setting.Get(db, siteID, SettingKey)
	if err != nil {
		return err
	}

	return json.Unmarshal(stored.Value, s)
}

// Save rewrites the settings record of a site.
func (s *Settings) Save(db *gorm.DB, siteID uint64) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = setting.Set(db, siteID, SettingKey, data)

	return err
}

// Create stores the record only if the site has none yet.
// It reports whether a record was written.
func (s *Settings) Create(db *gorm.DB, siteID uint64) (bool, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return false, err
	}

	_, err = setting.Create(db, siteID, SettingKey, data)
	if errors.Is(err, setting.ErrSettingAlreadyExists) {
		return false, nil
	}

	return err == nil, err
}

// Delete removes the settings record of a site. A missing record is not an error.
func Delete(db *gorm.DB, siteID uint64) error {
	err := setting.DeleteByName(db, siteID, SettingKey)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil
	}

	return err
}
