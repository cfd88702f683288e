package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider polishes markdown through the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	apiKey string
	name   string
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		apiKey: apiKey,
		name:   "openai",
	}
}

// NewOllamaProvider creates a provider talking to a local Ollama server
// through its OpenAI-compatible endpoint. No API key is required.
func NewOllamaProvider(endpoint, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = endpoint + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		apiKey: "ollama",
		name:   "ollama",
	}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Validate checks if the provider is properly configured.
func (p *OpenAIProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("%s: API key is not set", p.name)
	}
	if p.model == "" {
		return fmt.Errorf("%s: model is not set", p.name)
	}
	return nil
}

// Polish sends the markdown to the model and returns the corrected text.
func (p *OpenAIProvider) Polish(ctx context.Context, markdown string, opts PolishOptions) (*PolishResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultPolishOptions().MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: float32(opts.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(opts)},
			{Role: openai.ChatMessageRoleUser, Content: markdown},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: polish request failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty response", p.name)
	}

	return &PolishResult{
		Markdown: resp.Choices[0].Message.Content,
		Model:    p.model,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
