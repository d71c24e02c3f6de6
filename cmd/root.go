package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallerygen",
		Short: "Static photo-gallery site builder for renovation projects",
		Long: `Gallerygen builds a static before/during/after photo-gallery website.

It scans per-project folders of images and videos, generates thumbnail and
large variants, writes the gallery.json manifest the browser renderer reads,
and scaffolds the static project pages.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
