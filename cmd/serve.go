package cmd

import (
	"context"

	"github.com/ridgelinebuilt/gallerygen/internal/builder"
	"github.com/ridgelinebuilt/gallerygen/internal/preview"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var root string
	var port string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the built site locally",
		Long: `Serves the site root over HTTP for local preview.

With --watch, changes under projects/ trigger a rebuild, so new photos show
up on the next page reload.`,
		Example: `  # Preview on default port 8888
  gallerygen serve

  # Rebuild automatically while editing projects
  gallerygen serve --watch --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := siteRoot(root)
			server := preview.New(dir, ":"+port)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if watch {
				b := builder.New(dir)
				go func() {
					_ = preview.Watch(ctx, dir, func() error {
						_, err := b.Run()
						return err
					})
				}()
			}

			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Site root directory")
	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().BoolVar(&watch, "watch", false, "Rebuild when the projects tree changes")

	return cmd
}
