package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const StylesheetName = "formkit-vanilla.css"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the embedded stylesheet so callers can serve it.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
