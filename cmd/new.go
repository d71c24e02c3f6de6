package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ridgelinebuilt/gallerygen/internal/manifest"
	"github.com/ridgelinebuilt/gallerygen/internal/project"
	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "new <slug>",
		Short: "Scaffold a project folder",
		Long: `Creates projects/<slug>/ with a phase directory for each of renderings,
before, during, and after, plus a starter project.json. The slug becomes the
project's stable identifier, so it must be lowercase words joined by hyphens.`,
		Example: `  gallerygen new north-porch
  gallerygen new kitchen-remodel --root ~/sites/ridgeline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			if !project.ValidSlug(slug) {
				return fmt.Errorf("invalid slug %q: use lowercase words joined by hyphens, e.g. north-porch", slug)
			}

			projDir := filepath.Join(siteRoot(root), "projects", slug)
			if _, err := os.Stat(projDir); err == nil {
				return fmt.Errorf("project %s already exists", slug)
			}

			for _, phase := range manifest.PhaseOrder {
				if err := os.MkdirAll(filepath.Join(projDir, phase), 0755); err != nil {
					return fmt.Errorf("failed to create phase directory: %w", err)
				}
			}

			// Spell out the common fields so the record is easy to fill in.
			starter := map[string]any{
				"title":    project.TitleFromSlug(slug),
				"location": "",
				"date":     "",
				"status":   "In Progress",
				"summary":  "",
			}
			data, err := json.MarshalIndent(starter, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode starter metadata: %w", err)
			}
			recordPath := filepath.Join(projDir, "project.json")
			if err := os.WriteFile(recordPath, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", recordPath, err)
			}

			slog.Info("Project scaffolded", "slug", slug, "dir", projDir)
			fmt.Printf("Created %s — drop photos into its phase folders and run:\n", projDir)
			fmt.Println("  gallerygen build")
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Site root directory")

	return cmd
}
