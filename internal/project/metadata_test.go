package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug     string
		expected bool
	}{
		{"kitchen", true},
		{"north-porch-2024", true},
		{"a", true},
		{"", false},
		{"Kitchen", false},
		{"north_porch", false},
		{"-kitchen", false},
		{"kitchen-", false},
		{"double--dash", false},
		{"has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := ValidSlug(tt.slug); got != tt.expected {
				t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.expected)
			}
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	tests := []struct {
		slug     string
		expected string
	}{
		{"kitchen", "Kitchen"},
		{"north-porch", "North Porch"},
		{"unit-12b-remodel", "Unit 12b Remodel"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := TitleFromSlug(tt.slug); got != tt.expected {
				t.Errorf("TitleFromSlug(%q) = %q, want %q", tt.slug, got, tt.expected)
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	record := `{
  "title": "Kitchen Remodel",
  "location": "Asheville, NC",
  "date": "2024-11",
  "status": "Completed",
  "tags": ["kitchen", "interior"],
  "videos": {
    "after": ["https://youtu.be/abc123xyz", {"kind": "embed", "url": "https://player.vimeo.com/video/98765"}]
  }
}`
	if err := os.WriteFile(filepath.Join(dir, "project.json"), []byte(record), 0644); err != nil {
		t.Fatalf("Failed to write metadata: %v", err)
	}

	md, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if md.Title != "Kitchen Remodel" {
		t.Errorf("Title = %q", md.Title)
	}
	if md.Status != "Completed" {
		t.Errorf("Status = %q", md.Status)
	}
	if len(md.Tags) != 2 {
		t.Errorf("Tags = %v", md.Tags)
	}

	links := md.Videos["after"]
	if len(links) != 2 {
		t.Fatalf("Expected 2 video links, got %d", len(links))
	}
	if links[0].URL != "https://youtu.be/abc123xyz" || links[0].Kind != "" {
		t.Errorf("Bare string link = %+v", links[0])
	}
	if links[1].Kind != "embed" || links[1].URL != "https://player.vimeo.com/video/98765" {
		t.Errorf("Object link = %+v", links[1])
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	record := `title: Deck Rebuild
date: "2023-08"
videos:
  during:
    - https://vimeo.com/12345
    - kind: embed
      url: https://www.youtube.com/embed/qrs789`
	if err := os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(record), 0644); err != nil {
		t.Fatalf("Failed to write metadata: %v", err)
	}

	md, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if md.Title != "Deck Rebuild" || md.Date != "2023-08" {
		t.Errorf("Unexpected metadata: %+v", md)
	}
	links := md.Videos["during"]
	if len(links) != 2 {
		t.Fatalf("Expected 2 video links, got %d", len(links))
	}
	if links[0].URL != "https://vimeo.com/12345" {
		t.Errorf("Scalar link = %+v", links[0])
	}
	if links[1].Kind != "embed" {
		t.Errorf("Mapping link = %+v", links[1])
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "project.json"), []byte(`{"title": "From JSON"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(`title: From YAML`), 0644); err != nil {
		t.Fatal(err)
	}

	md, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if md.Title != "From JSON" {
		t.Errorf("Expected JSON record to win, got %q", md.Title)
	}
}

func TestLoadMissingRecord(t *testing.T) {
	md, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error for absent record, got %v", err)
	}
	if md.Title != "" {
		t.Errorf("Expected zero metadata, got %+v", md)
	}
}

func TestLoadMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "project.json"), []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Expected error for malformed record")
	}
}

func TestDisplayTitleAndSortKey(t *testing.T) {
	md := Metadata{}
	if got := md.DisplayTitle("north-porch"); got != "North Porch" {
		t.Errorf("DisplayTitle fallback = %q", got)
	}
	if got := md.SortKey("north-porch"); got != "north-porch" {
		t.Errorf("SortKey fallback = %q", got)
	}

	md = Metadata{Title: "Porch", Date: "2024-01"}
	if got := md.DisplayTitle("north-porch"); got != "Porch" {
		t.Errorf("DisplayTitle = %q", got)
	}
	if got := md.SortKey("north-porch"); got != "2024-01" {
		t.Errorf("SortKey = %q", got)
	}
}
