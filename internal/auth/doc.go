// Package auth provides authentication and authorization for the admin UI and API.
//
// Users log in against the local database, passwords are stored as Argon2id
// hashes. Every user has one role and a role holds a set of permissions.
//
// Routes are protected with RequirePermission:
//
//	app.Get("/settings/auto-featured",
//	    auth.RequirePermission(authService, auth.PermAdminSettings),
//	    handler,
//	)
package auth
