// Package verify checks a built site against its manifest: every referenced
// file must exist and every project entry must be internally consistent.
package verify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ridgelinebuilt/gallerygen/internal/manifest"
	"github.com/ridgelinebuilt/gallerygen/internal/project"
)

// Violation is one check failure, tied to the project it was found in.
type Violation struct {
	Slug    string
	Message string
}

func (v Violation) String() string {
	if v.Slug == "" {
		return v.Message
	}
	return v.Slug + ": " + v.Message
}

// Site loads the manifest under root and returns every violation found. An
// unreadable manifest is an error; violations are findings, not errors.
func Site(root string) ([]Violation, error) {
	manifestPath := filepath.Join(root, "generated", manifest.FileName)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return Manifest(root, m), nil
}

// Manifest checks an already-loaded manifest against the files under root.
func Manifest(root string, m *manifest.Manifest) []Violation {
	var violations []Violation
	add := func(slug, format string, args ...any) {
		violations = append(violations, Violation{Slug: slug, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	for _, p := range m.Projects {
		if seen[p.Slug] {
			add(p.Slug, "duplicate slug")
		}
		seen[p.Slug] = true

		if !project.ValidSlug(p.Slug) {
			add(p.Slug, "invalid slug")
		}
		if p.Title == "" {
			add(p.Slug, "missing title")
		}
		if p.SortKey == "" {
			add(p.Slug, "missing sort key")
		}

		if p.CoverThumb != "" && !exists(root, p.CoverThumb) {
			add(p.Slug, "cover %s does not resolve", p.CoverThumb)
		}

		for _, name := range manifest.PhaseOrder {
			ph := p.Phases.ByName(name)
			if ph == nil {
				continue
			}
			if ph.Empty() {
				add(p.Slug, "phase %s is present but has no media", name)
			}
			for _, img := range ph.Images {
				for _, ref := range []string{img.SrcThumb, img.SrcLarge} {
					if !exists(root, ref) {
						add(p.Slug, "image %s does not resolve", ref)
					}
				}
			}
			for _, v := range ph.Videos {
				switch v.Kind {
				case "embed":
					if !strings.HasPrefix(v.URL, "https://") {
						add(p.Slug, "embed video %s is not https", v.URL)
					}
				case "file":
					if !exists(root, v.URL) {
						add(p.Slug, "video %s does not resolve", v.URL)
					}
				default:
					add(p.Slug, "unknown video kind %q", v.Kind)
				}
			}
		}
	}

	slog.Info("Verification finished", "projects", len(m.Projects), "violations", len(violations))
	return violations
}

// exists resolves a site-relative reference like /generated/x/y.jpg against
// root. References escaping the site root never resolve.
func exists(root, ref string) bool {
	rel := strings.TrimPrefix(ref, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return false
	}
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
