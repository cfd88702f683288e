package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docfold/docx2md/internal/outline"
)

var outlineFlat bool

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print the reconstructed section hierarchy",
	Long: `Parses a DOCX document and prints its section tree with the
reconstructed numbering. The --flat flag prints the chapter projection
(directories and files) instead of the tree.

Examples:
  docx2md outline manual.docx
  docx2md outline manual.docx --flat`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineFlat, "flat", false, "print the flattened chapter projection")

	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	doc, err := parseDocument(inputPath)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	roots := outline.Build(doc.Blocks)

	if outlineFlat {
		for _, sec := range outline.Flatten(roots) {
			kind := "file"
			if sec.IsDir {
				kind = "dir "
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%d blocks)\n", kind, sec.Code(), sec.Title, len(sec.Blocks))
		}
		return nil
	}

	printSections(cmd, roots, 0)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d sections\n", outline.CountSections(roots))
	return nil
}

func printSections(cmd *cobra.Command, sections []*outline.Section, depth int) {
	for _, sec := range sections {
		number := numberString(sec.Number)
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", strings.Repeat("  ", depth), number, sec.Title)
		printSections(cmd, sec.Children, depth+1)
	}
}

func numberString(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ".")
}
