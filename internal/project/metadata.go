// Package project loads per-project metadata records from the projects tree.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a usable project folder name: lowercase
// alphanumeric words joined by single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// TitleFromSlug derives a display title when the metadata record has none,
// e.g. "north-porch" becomes "North Porch".
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// VideoLink is one configured external video for a phase. In the metadata
// file it may be written as a bare URL string or as {kind, url}.
type VideoLink struct {
	Kind string `json:"kind" yaml:"kind"`
	URL  string `json:"url" yaml:"url"`
}

func (v *VideoLink) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.URL = s
		return nil
	}
	type raw VideoLink
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*v = VideoLink(r)
	return nil
}

func (v *VideoLink) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v.URL = node.Value
		return nil
	}
	type raw VideoLink
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*v = VideoLink(r)
	return nil
}

// Metadata is the per-project record read from project.json or project.yaml.
// Every field is optional; absent fields are simply left out of the manifest.
type Metadata struct {
	Title        string                 `json:"title" yaml:"title"`
	Location     string                 `json:"location" yaml:"location"`
	Date         string                 `json:"date" yaml:"date"`
	ProjectType  string                 `json:"projectType" yaml:"projectType"`
	Scope        string                 `json:"scope" yaml:"scope"`
	Status       string                 `json:"status" yaml:"status"`
	BuildingArea string                 `json:"buildingArea" yaml:"buildingArea"`
	Client       string                 `json:"client" yaml:"client"`
	Notes        string                 `json:"notes" yaml:"notes"`
	Summary      string                 `json:"summary" yaml:"summary"`
	Tags         []string               `json:"tags" yaml:"tags"`
	Videos       map[string][]VideoLink `json:"videos" yaml:"videos"`
}

// Load reads the metadata record from a project folder, preferring
// project.json and falling back to project.yaml (or .yml). A folder with no
// record yields a zero Metadata and no error; a record that exists but does
// not parse is an error so the caller can warn and fall back to defaults.
func Load(dir string) (Metadata, error) {
	var md Metadata

	jsonPath := filepath.Join(dir, "project.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		if err := json.Unmarshal(data, &md); err != nil {
			return Metadata{}, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
		return md, nil
	}

	for _, name := range []string{"project.yaml", "project.yml"} {
		yamlPath := filepath.Join(dir, name)
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &md); err != nil {
			return Metadata{}, fmt.Errorf("failed to parse %s: %w", yamlPath, err)
		}
		return md, nil
	}

	return md, nil
}

// DisplayTitle returns the configured title, or one derived from the slug.
func (m Metadata) DisplayTitle(slug string) string {
	if m.Title != "" {
		return m.Title
	}
	return TitleFromSlug(slug)
}

// SortKey prefers the date and falls back to the slug, so undated projects
// still sort stably.
func (m Metadata) SortKey(slug string) string {
	if m.Date != "" {
		return m.Date
	}
	return slug
}
