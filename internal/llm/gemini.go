package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider polishes markdown through the Gemini API.
type GeminiProvider struct {
	model  string
	apiKey string
}

// NewGeminiProvider creates a Gemini provider. The client is constructed
// per request because genai.NewClient requires a context.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		model:  model,
		apiKey: apiKey,
	}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Validate checks if the provider is properly configured.
func (p *GeminiProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("gemini: API key is not set")
	}
	if p.model == "" {
		return fmt.Errorf("gemini: model is not set")
	}
	return nil
}

// Polish sends the markdown to the model and returns the corrected text.
func (p *GeminiProvider) Polish(ctx context.Context, markdown string, opts PolishOptions) (*PolishResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: client init failed: %w", err)
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultPolishOptions().MaxTokens
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(markdown), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens:   int32(maxTokens),
		SystemInstruction: genai.NewContentFromText(systemPrompt(opts), genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: polish request failed: %w", err)
	}

	result := &PolishResult{
		Markdown: resp.Text(),
		Model:    p.model,
	}
	if resp.UsageMetadata != nil {
		result.Usage = TokenUsage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}
