package models

import "time"

// Role is a named collection of permissions assigned to users.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;size:100;not null"`
	Description string `gorm:"size:255"`
	IsSystem    bool   `gorm:"default:false"` // system roles cannot be deleted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
