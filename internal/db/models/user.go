package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is an administrator account of the admin UI and API.
type User struct {
	ID       uint64 `gorm:"primaryKey"`
	Active   bool
	Username string `gorm:"unique;size:100;not null" form:"username"`
	Email    string `gorm:"size:255"`
	// Password is the Argon2id hash, never the plain text.
	Password string `gorm:"size:255" form:"password" json:"-"`
	RoleID   uint   `gorm:"column:role_id;not null"`
	Role     Role   `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"-"`
	// SiteID is the site the user administers.
	SiteID    uint64 `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the stored hash in constant time.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
