// Package llm provides the provider interface and registry for the
// optional markdown polish pass.
package llm

import (
	"context"
	"fmt"
)

// Provider is the interface that all LLM providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Polish takes converted markdown and returns a cleaned-up version.
	Polish(ctx context.Context, markdown string, opts PolishOptions) (*PolishResult, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// PolishOptions contains options for the polish pass.
type PolishOptions struct {
	Language    string  `json:"language,omitempty"`    // output language (e.g., "ru", "en")
	MaxTokens   int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
	Prompt      string  `json:"prompt,omitempty"`      // custom system prompt
}

// PolishResult contains the result of a polish pass.
type PolishResult struct {
	Markdown string     `json:"markdown"`
	Usage    TokenUsage `json:"usage"`
	Model    string     `json:"model"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultPolishOptions returns the default polish options.
func DefaultPolishOptions() PolishOptions {
	return PolishOptions{
		Language:    "ru",
		MaxTokens:   4096,
		Temperature: 0.3,
	}
}

const defaultSystemPrompt = `You are a technical editor. You receive markdown
converted from an office document. Fix broken line wraps, normalize list
markers and heading levels, and keep all code blocks, tables and links
exactly as they are. Reply with the corrected markdown only, in %s.`

// systemPrompt returns the prompt to use, preferring a custom one.
func systemPrompt(opts PolishOptions) string {
	if opts.Prompt != "" {
		return opts.Prompt
	}
	lang := opts.Language
	if lang == "" {
		lang = "the source language"
	}
	return fmt.Sprintf(defaultSystemPrompt, lang)
}
