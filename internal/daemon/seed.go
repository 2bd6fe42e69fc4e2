package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/db/models"
)

const (
	adminRole     = "admin"
	authorRole    = "author"
	adminUser     = "admin"
	adminPassword = "changeme"
)

// seed creates the built-in roles and, on an empty user table, the admin account.
func seed(db *gorm.DB) error {
	authService := auth.NewService(db)

	role, err := authService.EnsureRole(adminRole, "Full access", auth.AllPermissions())
	if err != nil {
		return err
	}

	if _, err = authService.EnsureRole(authorRole, "Writes posts and uploads media", []auth.PermissionInfo{
		{Name: auth.PermPostEdit},
		{Name: auth.PermPostRead},
		{Name: auth.PermMediaUpload},
		{Name: auth.PermMediaRead},
	}); err != nil {
		return err
	}

	local := auth.NewLocalProvider(db)

	count, err := local.CountUsers()
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	if _, err = local.CreateUser(adminUser, "", adminPassword, role.ID, models.DefaultSiteID); err != nil {
		return err
	}

	log.Warn().Str("user", adminUser).Msg("created default admin account, change its password")

	return nil
}
