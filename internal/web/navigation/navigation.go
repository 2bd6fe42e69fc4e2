// Package navigation builds the page title, breadcrumbs and side menu of admin pages.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is an entry of the admin side menu.
type MenuItem struct {
	Title      string
	URL        string
	Section    string
	Page       string
	Permission string // empty means every logged in user
	Active     bool
}

// menu lists the admin pages in display order.
var menu = []MenuItem{
	{Title: "Auto Featured Image", URL: "/settings/auto-featured", Section: "settings", Page: "auto-featured", Permission: "admin.settings"},
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
	Menu          []MenuItem
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// WithMenu fills the side menu with the pages the user may open.
// hasPermission may be nil, then only pages without permission are listed.
func (c *Context) WithMenu(hasPermission func(string) bool) *Context {
	c.Menu = c.Menu[:0]

	for _, item := range menu {
		if item.Permission != "" && (hasPermission == nil || !hasPermission(item.Permission)) {
			continue
		}

		item.Active = c.IsActive(item.Section, item.Page)
		c.Menu = append(c.Menu, item)
	}

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
