package llm

import (
	"fmt"
	"sort"
	"sync"
)

// Settings carries the static configuration a provider factory needs.
// Endpoint is only meaningful for local backends such as Ollama.
type Settings struct {
	APIKey   string
	Model    string
	Endpoint string
}

// Factory builds a provider from its settings.
type Factory func(Settings) Provider

// Registry maps provider names to factories. The polish stage resolves
// the configured provider name through it, so adding a backend is one
// Register call.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("nil factory for provider %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider already registered: %s", name)
	}
	r.factories[name] = f
	return nil
}

// New builds the named provider from its settings.
func (r *Registry) New(name string, s Settings) (Provider, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return f(s), nil
}

// Has reports whether a provider name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry holds the built-in polish backends.
var DefaultRegistry = &Registry{factories: map[string]Factory{
	"anthropic": func(s Settings) Provider { return NewAnthropicProvider(s.APIKey, s.Model) },
	"openai":    func(s Settings) Provider { return NewOpenAIProvider(s.APIKey, s.Model) },
	"gemini":    func(s Settings) Provider { return NewGeminiProvider(s.APIKey, s.Model) },
	"ollama":    func(s Settings) Provider { return NewOllamaProvider(s.Endpoint, s.Model) },
}}

// New builds a provider from the default registry.
func New(name string, s Settings) (Provider, error) {
	return DefaultRegistry.New(name, s)
}

// Names lists the providers in the default registry.
func Names() []string {
	return DefaultRegistry.Names()
}
