package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/apk-packager/internal/service/packager"
)

// newReadmeCmd previews the README shipped inside every package.
func newReadmeCmd() *cobra.Command {
	var (
		width int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "readme",
		Short: "Print the build instructions included in the package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return packager.RenderReadme(cmd.OutOrStdout(), width, raw)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", packager.DefaultReadmeWidth, "word-wrap width")
	cmd.Flags().BoolVar(&raw, "raw", false, "print plain markdown")

	return cmd
}
