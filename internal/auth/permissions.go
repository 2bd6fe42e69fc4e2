package auth

// Permission constants used for role-based access control.
const (
	// PermAdminSettings allows managing the auto featured image settings.
	PermAdminSettings = "admin.settings"
	// PermPostEdit allows creating and updating posts through the API.
	PermPostEdit = "post.edit"
	// PermPostRead allows reading posts through the API.
	PermPostRead = "post.read"
	// PermMediaUpload allows adding files to the media library.
	PermMediaUpload = "media.upload"
	// PermMediaRead allows listing the media library.
	PermMediaRead = "media.read"
)

// PermissionInfo describes a permission for seeding.
type PermissionInfo struct {
	Name        string
	Description string
}

// AllPermissions returns every permission known to the application.
func AllPermissions() []PermissionInfo {
	return []PermissionInfo{
		{Name: PermAdminSettings, Description: "Manage the auto featured image settings"},
		{Name: PermPostEdit, Description: "Create and update posts"},
		{Name: PermPostRead, Description: "Read posts"},
		{Name: PermMediaUpload, Description: "Upload media"},
		{Name: PermMediaRead, Description: "List media"},
	}
}
