package assets

import (
	"embed"
	"io/fs"
)

// Handlebars templates for generated artifacts

//go:embed embedded_templates
var Templates embed.FS

//go:embed embedded_schemas
var Schemas embed.FS

func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(Templates, "embedded_templates"); err == nil {
		return sub
	}
	return Templates
}

func GetSchemasFS() fs.FS {
	if sub, err := fs.Sub(Schemas, "embedded_schemas"); err == nil {
		return sub
	}
	return Schemas
}

// GetTemplate returns the source of a template by file name (e.g., "enum.h.hbs").
func GetTemplate(name string) (string, error) {
	data, err := fs.ReadFile(GetTemplatesFS(), name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetSchema returns the embedded schema bytes by relative path (e.g., "config/tonegen-config-v1.0.0.json").
func GetSchema(relPath string) ([]byte, bool) {
	data, err := fs.ReadFile(GetSchemasFS(), relPath)
	return data, err == nil
}
