package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// FormTemplate is the entry template inside TemplatesFS.
	FormTemplate   = "templates/form.tpl"
	StylesheetName = "formcheck.css"
)

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it before passing it back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
