// Package config manages application configuration.
package config

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Polish          PolishConfig        `yaml:"polish"`
	Pipeline        PipelineConfig      `yaml:"pipeline"`
	Heuristics      HeuristicsConfig    `yaml:"heuristics"`
}

// Provider represents an LLM provider configuration.
type Provider struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Endpoint  string `yaml:"endpoint,omitempty"` // for Ollama or custom endpoints
}

// PolishConfig contains options for the optional LLM polish pass.
type PolishConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Temperature float64 `yaml:"temperature"`
	Language    string  `yaml:"language"`
}

// PipelineConfig controls the output layout of a conversion.
type PipelineConfig struct {
	OutputDir       string `yaml:"output_dir"`
	AssetsDirName   string `yaml:"assets_dir_name"`
	ChapterPattern  string `yaml:"chapter_pattern"`
	SlugMaxLength   int    `yaml:"slug_max_length"`
	SplitLevel      int    `yaml:"split_level"`
	HierarchyLayout bool   `yaml:"hierarchy_layout"`
}

// HeuristicsConfig overrides the built-in classification tables. Empty
// slices keep the defaults.
type HeuristicsConfig struct {
	HeadingPatterns     []string `yaml:"heading_patterns"`
	ServiceHeadings     []string `yaml:"service_headings"`
	CodeStylePatterns   []string `yaml:"code_style_patterns"`
	MonoFonts           []string `yaml:"mono_fonts"`
	ZeroChapterSections []string `yaml:"zero_chapter_sections"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "anthropic",
		Providers: map[string]Provider{
			"openai": {
				APIKey:    "${OPENAI_API_KEY}",
				Model:     "gpt-4o-mini",
				MaxTokens: 4096,
			},
			"anthropic": {
				APIKey:    "${ANTHROPIC_API_KEY}",
				Model:     "claude-3-5-sonnet-20241022",
				MaxTokens: 4096,
			},
			"gemini": {
				APIKey:    "${GOOGLE_API_KEY}",
				Model:     "gemini-1.5-flash",
				MaxTokens: 4096,
			},
			"ollama": {
				Endpoint:  "http://localhost:11434",
				Model:     "llama3.2",
				MaxTokens: 4096,
			},
		},
		Polish: PolishConfig{
			Enabled:     false,
			Temperature: 0.3,
			Language:    "ru",
		},
		Pipeline: PipelineConfig{
			OutputDir:      "out",
			AssetsDirName:  "assets",
			ChapterPattern: "%02d-%s.md",
			SlugMaxLength:  60,
			SplitLevel:     1,
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}
