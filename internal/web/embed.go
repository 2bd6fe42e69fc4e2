package web

import (
	"embed"
	"io/fs"
	"net/http"
)

var (
	//go:embed static
	embeddedStaticFiles embed.FS

	//go:embed templates
	embeddedTemplates embed.FS
)

// templateFileSystem returns the embedded templates rooted at the templates folder,
// so template names read "layouts/base" rather than "templates/layouts/base".
func templateFileSystem() http.FileSystem {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}
