// Package templates provides the embedded file payloads for project
// scaffolding. Each component's generator names the template entries it
// emits; this package only loads and renders them.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed files
var scaffoldFS embed.FS

// Data is the rendering context shared by every scaffold template.
type Data struct {
	// Project is the target directory base name.
	Project string
	// Components are the resolved component ids in catalog order.
	Components []string
	// Versions maps version keys to resolved version strings.
	Versions map[string]string
	// Flags are the active feature flags, sorted.
	Flags []string
}

// Has reports whether a component id is part of the resolved set.
func (d Data) Has(id string) bool {
	for _, c := range d.Components {
		if c == id {
			return true
		}
	}
	return false
}

// Version returns a resolved version string by key.
func (d Data) Version(key string) string {
	return d.Versions[key]
}

// Load parses every embedded scaffold template. Template names are paths
// relative to the files root with the .tmpl suffix stripped, e.g.
// "fastapi/app/main.py".
func Load() (*template.Template, error) {
	tmpl := template.New("")

	err := fs.WalkDir(scaffoldFS, "files", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := scaffoldFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		name := strings.TrimPrefix(path, "files/")
		name = strings.TrimSuffix(name, ".tmpl")

		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading scaffold templates: %w", err)
	}

	return tmpl, nil
}

// Render executes one named template against data.
func Render(tmpl *template.Template, name string, data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
