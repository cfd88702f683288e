package llm

import (
	"context"
	"strings"
	"testing"
)

// mockProvider is a test implementation of Provider.
type mockProvider struct {
	name  string
	model string
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Polish(ctx context.Context, markdown string, opts PolishOptions) (*PolishResult, error) {
	return &PolishResult{
		Markdown: markdown,
		Model:    m.model,
	}, nil
}

func (m *mockProvider) Validate() error {
	return nil
}

func mockFactory(name string) Factory {
	return func(s Settings) Provider {
		return &mockProvider{name: name, model: s.Model}
	}
}

func TestRegistryRegisterAndNew(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("mock", mockFactory("mock")); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	p, err := r.New("mock", Settings{Model: "mock-model"})
	if err != nil {
		t.Fatalf("failed to build: %v", err)
	}
	if p.Name() != "mock" {
		t.Errorf("expected 'mock', got %s", p.Name())
	}

	result, err := p.Polish(context.Background(), "text", PolishOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Model != "mock-model" {
		t.Errorf("settings not passed to factory: %s", result.Model)
	}
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("mock", mockFactory("mock")); err != nil {
		t.Fatalf("failed to register first: %v", err)
	}
	if err := r.Register("mock", mockFactory("mock")); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistryRegisterInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", mockFactory("x")); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register("mock", nil); err == nil {
		t.Error("expected error for nil factory")
	}
}

func TestRegistryNewUnknown(t *testing.T) {
	r := NewRegistry()

	if _, err := r.New("nonexistent", Settings{}); err == nil {
		t.Error("expected error for nonexistent provider")
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("gamma", mockFactory("gamma"))
	_ = r.Register("alpha", mockFactory("alpha"))
	_ = r.Register("beta", mockFactory("beta"))

	names := r.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "beta" || names[2] != "gamma" {
		t.Errorf("expected sorted names, got %v", names)
	}

	if !r.Has("alpha") {
		t.Error("expected Has('alpha') to return true")
	}
	if r.Has("nonexistent") {
		t.Error("expected Has('nonexistent') to return false")
	}
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	want := []string{"anthropic", "gemini", "ollama", "openai"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("built-in providers: %v", got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("name %d: got %s, want %s", i, got[i], name)
		}
	}

	p, err := New("ollama", Settings{Endpoint: "http://localhost:11434", Model: "llama3.2"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected name 'ollama', got %s", p.Name())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := New("local-llama", Settings{}); err == nil {
		t.Error("expected error for unknown built-in")
	}
}

func TestDefaultPolishOptions(t *testing.T) {
	opts := DefaultPolishOptions()

	if opts.Language != "ru" {
		t.Errorf("expected language 'ru', got %s", opts.Language)
	}
	if opts.MaxTokens != 4096 {
		t.Errorf("expected max_tokens 4096, got %d", opts.MaxTokens)
	}
	if opts.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %f", opts.Temperature)
	}
}

func TestSystemPrompt(t *testing.T) {
	custom := systemPrompt(PolishOptions{Prompt: "do nothing"})
	if custom != "do nothing" {
		t.Errorf("custom prompt not honored: %q", custom)
	}

	def := systemPrompt(PolishOptions{Language: "en"})
	if !strings.Contains(def, "in en.") {
		t.Errorf("default prompt should name the language: %q", def)
	}
}

func TestProviderValidate(t *testing.T) {
	if err := NewAnthropicProvider("", "model").Validate(); err == nil {
		t.Error("expected error for missing API key")
	}
	if err := NewOpenAIProvider("key", "").Validate(); err == nil {
		t.Error("expected error for missing model")
	}
	if err := NewGeminiProvider("key", "model").Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	ollama := NewOllamaProvider("http://localhost:11434", "llama3.2")
	if ollama.Name() != "ollama" {
		t.Errorf("expected name 'ollama', got %s", ollama.Name())
	}
	if err := ollama.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
