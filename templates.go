package paramform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-paramform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet so Go applications can serve it
// when the inline <style> block is disabled.
//
// Typical mount:
//
//	mux.Handle("/paramform/",
//	  http.StripPrefix("/paramform/",
//	    http.FileServerFS(paramform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
