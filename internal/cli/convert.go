package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/docfold/docx2md/internal/config"
	"github.com/docfold/docx2md/internal/docx"
	"github.com/docfold/docx2md/internal/pipeline"
)

var (
	convertOutputDir string
	convertPolish    bool
	convertProvider  string
	convertModel     string
	convertHierarchy bool
	convertVerbose   bool
	convertQuiet     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a DOCX document to a markdown chapter tree",
	Long: `Converts a DOCX document into per-chapter markdown files.

The output directory holds one subdirectory per document with the chapter
files, a table of contents (0.index.md), a manifest.json and the extracted
images. The --hierarchy flag additionally writes the section tree layout.

Environment variables:
  DOCX2MD_POLISH=true    enable the LLM polish pass
  DOCX2MD_PROVIDER=xxx   polish provider (openai, anthropic, gemini, ollama)
  DOCX2MD_MODEL=xxx      polish model name

Examples:
  docx2md convert manual.docx
  docx2md convert manual.docx --output-dir ./out --hierarchy
  docx2md convert manual.docx --polish --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutputDir, "output-dir", "o", "", "output directory (default from config)")
	convertCmd.Flags().BoolVar(&convertPolish, "polish", false, "polish rendered markdown with an LLM")
	convertCmd.Flags().StringVar(&convertProvider, "provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	convertCmd.Flags().StringVar(&convertModel, "model", "", "LLM model name")
	convertCmd.Flags().BoolVar(&convertHierarchy, "hierarchy", false, "also write the section tree layout")
	convertCmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "verbose output")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "quiet mode")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if convertOutputDir != "" {
		cfg.Pipeline.OutputDir = convertOutputDir
	}
	if convertHierarchy {
		cfg.Pipeline.HierarchyLayout = true
	}

	log := buildLogger()
	defer log.Sync()

	p := pipeline.New(cfg, log)

	if convertPolish || config.GetEnvBool("DOCX2MD_POLISH") {
		provider := convertProvider
		if provider == "" {
			provider = os.Getenv("DOCX2MD_PROVIDER")
		}
		model := convertModel
		if model == "" {
			model = os.Getenv("DOCX2MD_MODEL")
		}
		polisher, err := buildProvider(cfg, provider, model)
		if err != nil {
			return err
		}
		if err := polisher.Validate(); err != nil {
			return fmt.Errorf("polish provider is not configured: %w", err)
		}
		cfg.Polish.Enabled = true
		p.SetPolisher(polisher)
	}

	result, err := p.Process(cmd.Context(), inputPath)
	if err != nil {
		if errors.Is(err, docx.ErrLegacyFormat) {
			return fmt.Errorf("%s is a legacy .doc file; convert it to .docx first", inputPath)
		}
		return fmt.Errorf("conversion failed: %w", err)
	}

	if !convertQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "converted: %s (%d chapters, %d assets)\n",
			result.OutputDir, len(result.Chapters), result.AssetCount)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to init config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func buildLogger() *zap.Logger {
	if convertQuiet {
		return zap.NewNop()
	}
	if convertVerbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
