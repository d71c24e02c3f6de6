package cmd

import (
	"fmt"

	"github.com/ridgelinebuilt/gallerygen/internal/verify"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the built site against its manifest",
		Long: `Loads generated/gallery.json and checks that every project entry is
consistent: slugs are unique and valid, every referenced image and local
video resolves to a file under the site root, and no phase is listed
without media.`,
		Example: `  gallerygen verify
  gallerygen verify --root ~/sites/ridgeline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			violations, err := verify.Site(siteRoot(root))
			if err != nil {
				return err
			}

			for _, v := range violations {
				fmt.Println(v.String())
			}
			if n := len(violations); n > 0 {
				return fmt.Errorf("%d violation(s) found", n)
			}

			fmt.Println("Site is consistent.")
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Site root directory")

	return cmd
}
