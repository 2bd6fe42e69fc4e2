package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the path of a route group's own page.
	RouterRootPath = "/"

	// LocalsSiteID is the fiber.Locals key of the site a request belongs to.
	LocalsSiteID = "siteID"

	// LocalsCSRFToken is the fiber.Locals key the csrf middleware stores its token under.
	LocalsCSRFToken = "csrf"

	// CSRFFormField is the form field carrying the csrf token.
	CSRFFormField = "_csrf"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
