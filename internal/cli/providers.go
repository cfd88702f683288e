package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docfold/docx2md/internal/config"
	"github.com/docfold/docx2md/internal/llm"
)

type providerInfo struct {
	Name         string
	DefaultModel string
	EnvKey       string
	Description  string
}

var providers = []providerInfo{
	{
		Name:         "anthropic",
		DefaultModel: "claude-3-5-sonnet-20241022",
		EnvKey:       "ANTHROPIC_API_KEY",
		Description:  "Anthropic Claude API",
	},
	{
		Name:         "openai",
		DefaultModel: "gpt-4o-mini",
		EnvKey:       "OPENAI_API_KEY",
		Description:  "OpenAI GPT API",
	},
	{
		Name:         "gemini",
		DefaultModel: "gemini-1.5-flash",
		EnvKey:       "GOOGLE_API_KEY",
		Description:  "Google Gemini API",
	},
	{
		Name:         "ollama",
		DefaultModel: "llama3.2",
		EnvKey:       "OLLAMA_HOST",
		Description:  "Local Ollama server",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available LLM providers for the polish pass",
	Long: `Lists the LLM providers usable with the --polish flag.

Each provider needs its API key in the named environment variable
(ollama runs locally and needs no key).

Examples:
  docx2md convert manual.docx --polish --provider anthropic
  docx2md convert manual.docx --polish --provider openai --model gpt-4o`,
	Run: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "PROVIDER\tDEFAULT MODEL\tENV\tSTATUS\tDESCRIPTION")
	for _, p := range providers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.DefaultModel, p.EnvKey, checkProviderStatus(p), p.Description)
	}
}

func checkProviderStatus(p providerInfo) string {
	if p.Name == "ollama" {
		// Ollama needs no API key.
		return "available"
	}
	if os.Getenv(p.EnvKey) != "" {
		return "configured"
	}
	return "not configured"
}

// detectProviderFromModel guesses the provider from a model name. Unknown
// models are assumed to be local Ollama models.
func detectProviderFromModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case m == "":
		return "anthropic"
	case strings.HasPrefix(m, "claude"):
		return "anthropic"
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"):
		return "openai"
	case strings.HasPrefix(m, "gemini"):
		return "gemini"
	default:
		return "ollama"
	}
}

// buildProvider resolves the provider name through the registry, with
// model and name overrides from flags.
func buildProvider(cfg *config.Config, name, model string) (llm.Provider, error) {
	if name == "" && model != "" {
		name = detectProviderFromModel(model)
	}
	if name == "" {
		name = cfg.DefaultProvider
	}

	pc, ok := cfg.GetProvider(name)
	if !ok {
		pc = &config.Provider{}
	}
	if model == "" {
		model = pc.Model
	}
	endpoint := pc.Endpoint
	if name == "ollama" && endpoint == "" {
		endpoint = config.GetEnvOrDefault("OLLAMA_HOST", "http://localhost:11434")
	}

	return llm.New(name, llm.Settings{
		APIKey:   pc.APIKey,
		Model:    model,
		Endpoint: endpoint,
	})
}
