package caddy

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/firefly-engineering/portman/internal/registry"
)

//go:embed templates/*.tmpl
var templates embed.FS

var galleryTemplate = template.Must(template.ParseFS(templates, "templates/gallery.html.tmpl"))

// RenderGallery generates the static index page listing every project.
func RenderGallery(projects []registry.NamedProject) (string, error) {
	if projects == nil {
		projects = []registry.NamedProject{}
	}

	var buf bytes.Buffer
	if err := galleryTemplate.Execute(&buf, projects); err != nil {
		return "", fmt.Errorf("failed to render gallery: %w", err)
	}
	return buf.String(), nil
}
