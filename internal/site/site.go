// Package site owns the static surface of the gallery: embedded page
// templates and the stylesheet/script assets the browser renderer needs.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

//go:embed web/project.html web/index.html web/assets/*
var content embed.FS

var projectTmpl = template.Must(template.ParseFS(content, "web/project.html"))

// PageData feeds the project page template.
type PageData struct {
	Slug  string
	Title string
}

// WriteProjectPage creates projects/<slug>/index.html from the embedded
// template when it does not exist yet. Pages are only scaffolded, never
// overwritten, so hand edits survive rebuilds. Reports whether a page was
// written.
func WriteProjectPage(root, slug, title string) (bool, error) {
	path := filepath.Join(root, "projects", slug, "index.html")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	var buf bytes.Buffer
	if err := projectTmpl.Execute(&buf, PageData{Slug: slug, Title: title}); err != nil {
		return false, fmt.Errorf("failed to render project page: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("failed to write project page: %w", err)
	}

	slog.Info("Created project page", "path", path)
	return true, nil
}

// WriteHomePage creates the site's root index.html when missing.
func WriteHomePage(root string) (bool, error) {
	path := filepath.Join(root, "index.html")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := content.ReadFile("web/index.html")
	if err != nil {
		return false, fmt.Errorf("failed to read embedded home page: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write home page: %w", err)
	}

	slog.Info("Created home page", "path", path)
	return true, nil
}

// InstallAssets writes the stylesheet and gallery script into <root>/assets.
// Assets are generated output and always overwritten.
func InstallAssets(root string) error {
	assetsDir := filepath.Join(root, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}

	entries, err := fs.ReadDir(content, "web/assets")
	if err != nil {
		return fmt.Errorf("failed to list embedded assets: %w", err)
	}
	for _, e := range entries {
		data, err := content.ReadFile("web/assets/" + e.Name())
		if err != nil {
			return fmt.Errorf("failed to read embedded asset %s: %w", e.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(assetsDir, e.Name()), data, 0644); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", e.Name(), err)
		}
	}
	return nil
}
