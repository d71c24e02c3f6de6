// Package builder walks the projects tree, generates image variants, and
// assembles the gallery manifest.
package builder

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ridgelinebuilt/gallerygen/internal/imaging"
	"github.com/ridgelinebuilt/gallerygen/internal/manifest"
	"github.com/ridgelinebuilt/gallerygen/internal/project"
	"github.com/ridgelinebuilt/gallerygen/internal/site"
	"github.com/ridgelinebuilt/gallerygen/internal/videos"
)

// Builder runs one full site build rooted at Root.
type Builder struct {
	Root string
	// Force regenerates every image variant even when the output is newer
	// than its source.
	Force bool

	processed int
	fresh     int
	failed    int
}

// New returns a builder for the given site root.
func New(root string) *Builder {
	return &Builder{Root: root}
}

// Run builds the whole site: every project's image variants, the project
// pages, the shared assets, and generated/gallery.json. One broken image or
// metadata record never fails the build; it is logged and skipped.
func (b *Builder) Run() (*manifest.Manifest, error) {
	projectsDir := filepath.Join(b.Root, "projects")
	generatedDir := filepath.Join(b.Root, "generated")

	for _, dir := range []string{projectsDir, generatedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	slog.Info("Starting build", "root", b.Root, "force", b.Force)
	b.processed, b.fresh, b.failed = 0, 0, 0

	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	m := &manifest.Manifest{Projects: []manifest.Project{}}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		slug := entry.Name()
		if !project.ValidSlug(slug) {
			slog.Warn("Skipping folder with invalid slug", "folder", slug)
			continue
		}

		p, err := b.buildProject(slug)
		if err != nil {
			return nil, err
		}
		m.Projects = append(m.Projects, p)
	}

	if err := site.InstallAssets(b.Root); err != nil {
		return nil, err
	}
	if _, err := site.WriteHomePage(b.Root); err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(generatedDir, manifest.FileName)
	if err := manifest.Save(m, manifestPath); err != nil {
		return nil, err
	}

	slog.Info("Build complete",
		"projects", len(m.Projects),
		"images_processed", b.processed,
		"images_fresh", b.fresh,
		"images_failed", b.failed,
		"manifest", manifestPath)
	return m, nil
}

func (b *Builder) buildProject(slug string) (manifest.Project, error) {
	projDir := filepath.Join(b.Root, "projects", slug)

	md, err := project.Load(projDir)
	if err != nil {
		// A broken record demotes the project to defaults, same as no record.
		slog.Warn("Failed to parse project metadata", "slug", slug, "error", err)
		md = project.Metadata{}
	}

	p := manifest.Project{
		Slug:         slug,
		Title:        md.DisplayTitle(slug),
		Location:     md.Location,
		Date:         md.Date,
		ProjectType:  md.ProjectType,
		Scope:        md.Scope,
		Status:       md.Status,
		BuildingArea: md.BuildingArea,
		Client:       md.Client,
		Notes:        md.Notes,
		Summary:      md.Summary,
		Tags:         md.Tags,
		SortKey:      md.SortKey(slug),
	}

	for _, phase := range manifest.PhaseOrder {
		ph := &manifest.Phase{
			Images: b.buildImages(slug, phase),
			Videos: b.buildVideos(slug, phase, md.Videos[phase]),
		}
		p.Phases.Set(phase, ph)
	}

	p.CoverThumb = p.Cover()

	if _, err := site.WriteProjectPage(b.Root, slug, p.Title); err != nil {
		return manifest.Project{}, err
	}

	return p, nil
}

// buildImages processes one phase directory into manifest entries,
// regenerating only the variants whose output is missing or stale.
func (b *Builder) buildImages(slug, phase string) []manifest.Image {
	srcDir := filepath.Join(b.Root, "projects", slug, phase)
	outDir := filepath.Join(b.Root, "generated", slug, phase)

	var images []manifest.Image
	for _, name := range listFiles(srcDir, imaging.Exts) {
		srcPath := filepath.Join(srcDir, name)
		outName := imaging.OutputName(name)
		thumbPath := filepath.Join(outDir, "thumb", outName)
		largePath := filepath.Join(outDir, "large", outName)

		needThumb := b.stale(srcPath, thumbPath)
		needLarge := b.stale(srcPath, largePath)

		if needThumb || needLarge {
			img, err := imaging.Decode(srcPath)
			if err != nil {
				slog.Warn("Failed to decode image", "path", srcPath, "error", err)
				b.failed++
				continue
			}
			if needThumb {
				if err := imaging.SaveJPEG(imaging.Thumbnail(img), thumbPath); err != nil {
					slog.Warn("Failed to write thumbnail", "path", thumbPath, "error", err)
					b.failed++
					continue
				}
			}
			if needLarge {
				if err := imaging.SaveJPEG(imaging.Large(img), largePath); err != nil {
					slog.Warn("Failed to write large image", "path", largePath, "error", err)
					b.failed++
					continue
				}
			}
			b.processed++
		} else {
			b.fresh++
		}

		images = append(images, manifest.Image{
			SrcThumb: path.Join("/generated", slug, phase, "thumb", outName),
			SrcLarge: path.Join("/generated", slug, phase, "large", outName),
		})
	}
	return images
}

// buildVideos resolves configured links first, then local files, matching the
// order they appear on the page.
func (b *Builder) buildVideos(slug, phase string, links []project.VideoLink) []manifest.Video {
	var vids []manifest.Video

	for _, link := range links {
		url := videos.EmbedURL(link.URL)
		kind := link.Kind
		if kind == "" {
			kind = "embed"
		}
		if url == "" {
			if link.Kind == "" {
				slog.Warn("Dropping unrecognized video link", "slug", slug, "phase", phase, "url", link.URL)
				continue
			}
			// Explicit kind passes the URL through untouched.
			url = link.URL
		}
		vids = append(vids, manifest.Video{Kind: kind, URL: url})
	}

	vidDir := filepath.Join(b.Root, "projects", slug, "video", phase)
	for _, name := range listFiles(vidDir, videos.Exts) {
		vids = append(vids, manifest.Video{
			Kind: "file",
			URL:  path.Join("/projects", slug, "video", phase, name),
		})
	}
	return vids
}

// stale reports whether dst must be (re)generated from src.
func (b *Builder) stale(src, dst string) bool {
	if b.Force {
		return true
	}
	di, err := os.Stat(dst)
	if err != nil {
		return true
	}
	si, err := os.Stat(src)
	if err != nil {
		return true
	}
	return di.ModTime().Before(si.ModTime())
}

// listFiles returns the names of regular files in dir with one of the given
// extensions, sorted. A missing directory is simply empty.
func listFiles(dir string, exts map[string]bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	return names
}
