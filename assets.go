package formcheck

import (
	"io/fs"

	"github.com/goliatone/go-formcheck/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// StylesheetFS exposes the feedback stylesheet for serving next to rendered
// fragments.
//
// Typical mount:
//
//	mux.Handle("/formcheck/",
//	  http.StripPrefix("/formcheck/",
//	    http.FileServerFS(formcheck.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return vanilla.AssetsFS()
}
