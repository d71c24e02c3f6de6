package manifest

import "sort"

// Phase names in the order the site presents them.
const (
	PhaseRenderings = "renderings"
	PhaseBefore     = "before"
	PhaseDuring     = "during"
	PhaseAfter      = "after"
)

// PhaseOrder is the tab order on a project page.
var PhaseOrder = []string{PhaseRenderings, PhaseBefore, PhaseDuring, PhaseAfter}

// CoverPriority is the order phases are consulted when picking a project's
// cover image: a rendering beats a finished photo beats in-progress shots.
var CoverPriority = []string{PhaseRenderings, PhaseAfter, PhaseDuring, PhaseBefore}

// Image is one processed photo with its two generated variants.
type Image struct {
	SrcThumb string `json:"srcThumb"`
	SrcLarge string `json:"srcLarge"`
	Alt      string `json:"alt,omitempty"`
}

// Video is either an external embed (YouTube/Vimeo iframe URL) or a
// site-relative path to a local video file.
type Video struct {
	Kind string `json:"kind"` // "embed" or "file"
	URL  string `json:"url"`
}

// Phase holds the media for one labeled bucket of a project.
type Phase struct {
	Images []Image `json:"images,omitempty"`
	Videos []Video `json:"videos,omitempty"`
}

// Empty reports whether the phase has no media at all.
func (p *Phase) Empty() bool {
	return p == nil || (len(p.Images) == 0 && len(p.Videos) == 0)
}

// Phases groups a project's media by phase. Empty phases are omitted from
// the manifest entirely so the renderer never shows a tab with nothing in it.
type Phases struct {
	Renderings *Phase `json:"renderings,omitempty"`
	Before     *Phase `json:"before,omitempty"`
	During     *Phase `json:"during,omitempty"`
	After      *Phase `json:"after,omitempty"`
}

// ByName returns the phase for a known phase name, or nil.
func (p *Phases) ByName(name string) *Phase {
	switch name {
	case PhaseRenderings:
		return p.Renderings
	case PhaseBefore:
		return p.Before
	case PhaseDuring:
		return p.During
	case PhaseAfter:
		return p.After
	}
	return nil
}

// Set stores a phase under a known phase name. Empty or unknown phases are
// dropped.
func (p *Phases) Set(name string, phase *Phase) {
	if phase.Empty() {
		return
	}
	switch name {
	case PhaseRenderings:
		p.Renderings = phase
	case PhaseBefore:
		p.Before = phase
	case PhaseDuring:
		p.During = phase
	case PhaseAfter:
		p.After = phase
	}
}

// Project is one renovation project as it appears in gallery.json.
type Project struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Location     string   `json:"location,omitempty"`
	Date         string   `json:"date,omitempty"`
	ProjectType  string   `json:"projectType,omitempty"`
	Scope        string   `json:"scope,omitempty"`
	Status       string   `json:"status,omitempty"`
	BuildingArea string   `json:"buildingArea,omitempty"`
	Client       string   `json:"client,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	CoverThumb   string   `json:"coverThumb,omitempty"`
	SortKey      string   `json:"sortKey"`
	Phases       Phases   `json:"phases"`
}

// Cover returns the thumbnail of the first image found in cover-priority
// order, or "" when the project has no images.
func (pr *Project) Cover() string {
	for _, name := range CoverPriority {
		ph := pr.Phases.ByName(name)
		if ph != nil && len(ph.Images) > 0 {
			return ph.Images[0].SrcThumb
		}
	}
	return ""
}

// Manifest is the aggregate index the build writes to generated/gallery.json.
type Manifest struct {
	Projects []Project `json:"projects"`
}

// Find returns the project with the given slug.
func (m *Manifest) Find(slug string) (*Project, bool) {
	for i := range m.Projects {
		if m.Projects[i].Slug == slug {
			return &m.Projects[i], true
		}
	}
	return nil, false
}

// Sorted returns the projects ordered newest first by sort key, with slug as
// the tiebreaker. The home page uses this ordering.
func (m *Manifest) Sorted() []Project {
	out := make([]Project, len(m.Projects))
	copy(out, m.Projects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortKey != out[j].SortKey {
			return out[i].SortKey > out[j].SortKey
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
