package cmd

import (
	"os"

	"github.com/ridgelinebuilt/gallerygen/internal/builder"
	"github.com/spf13/cobra"
)

// siteRoot resolves the site root: flag value first, then GALLERYGEN_ROOT,
// then the working directory.
func siteRoot(flag string) string {
	if flag != "" && flag != "." {
		return flag
	}
	if env := os.Getenv("GALLERYGEN_ROOT"); env != "" {
		return env
	}
	return flag
}

func newBuildCmd() *cobra.Command {
	var root string
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build image variants, project pages, and the gallery manifest",
		Long: `Walks projects/, resizes every source photo into thumbnail and large
variants under generated/, resolves configured and local videos, scaffolds
missing project pages, and writes generated/gallery.json.

Variants whose output is already newer than the source are left alone;
use --force to regenerate everything.`,
		Example: `  # Build the site in the current directory
  gallerygen build

  # Build another site and regenerate every image
  gallerygen build --root ~/sites/ridgeline --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := builder.New(siteRoot(root))
			b.Force = force
			_, err := b.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Site root directory")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate images even when output is fresh")

	return cmd
}
