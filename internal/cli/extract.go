package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docfold/docx2md/internal/assemble"
	"github.com/docfold/docx2md/internal/docx"
	"github.com/docfold/docx2md/internal/ir"
)

var (
	extractOutput      string
	extractFormat      string
	extractPrettyPrint bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the intermediate block representation",
	Long: `Parses a DOCX document and prints the assembled block list without
writing the chapter tree. Output is JSON or a text summary.

Examples:
  docx2md extract manual.docx
  docx2md extract manual.docx -o blocks.json
  docx2md extract manual.docx --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file path (default: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "output format (json, text)")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	doc, err := parseDocument(inputPath)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	output, err := formatOutput(doc, extractFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if extractOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		if err := os.WriteFile(extractOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "extracted: %s\n", extractOutput)
	}

	return nil
}

func parseDocument(path string) (*ir.Document, error) {
	pkg, err := docx.Open(path)
	if err != nil {
		return nil, err
	}
	return assemble.Assemble(pkg, assemble.Options{}, zap.NewNop()), nil
}

func formatOutput(doc *ir.Document, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if extractPrettyPrint {
			data, err = json.MarshalIndent(doc, "", "  ")
		} else {
			data, err = json.Marshal(doc)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatAsText(doc), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatAsText(doc *ir.Document) string {
	var sb strings.Builder
	for _, block := range doc.Blocks {
		switch block.Type {
		case ir.BlockTypeHeading:
			sb.WriteString(strings.Repeat("#", block.Heading.Level))
			sb.WriteString(" ")
			sb.WriteString(block.Heading.Text)
			sb.WriteString("\n\n")
		case ir.BlockTypeParagraph:
			sb.WriteString(block.Paragraph.Text())
			sb.WriteString("\n\n")
		case ir.BlockTypeCode:
			fmt.Fprintf(&sb, "[code %s: %d bytes]\n\n", block.Code.Language, len(block.Code.Code))
		case ir.BlockTypeList:
			fmt.Fprintf(&sb, "[list: %d items]\n\n", len(block.List.Items))
		case ir.BlockTypeTable:
			fmt.Fprintf(&sb, "[table: %d rows]\n\n", len(block.Table.Rows)+1)
		case ir.BlockTypeImage:
			fmt.Fprintf(&sb, "[image: %s]\n\n", block.Image.ResourceID)
		}
	}
	return sb.String()
}
