// Package cli implements the docx2md command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version shown by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "docx2md [file]",
	Short: "Convert DOCX manuals to structured markdown",
	Long: `docx2md converts DOCX technical manuals into a markdown chapter tree.

The converter reconstructs section numbering, detects code listings and
image captions, resolves cross references and splits the document into
per-chapter markdown files with extracted assets.

Examples:
  docx2md convert manual.docx
  docx2md convert manual.docx --output-dir ./out --hierarchy
  docx2md extract manual.docx --format json
  docx2md outline manual.docx`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "docx2md %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
