// Package definition generates contextual word definitions with a hosted
// language model.
package definition

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/lexideck/internal/model"
)

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("api key is required")
	// ErrEmptyDefinition is returned when the provider answers with no text.
	ErrEmptyDefinition = errors.New("provider returned an empty definition")
)

// Provider returns a definition of word as used in sentence.
type Provider interface {
	Define(ctx context.Context, word, sentence string) (string, error)
	Close() error
}

// Prompt builds the request text for a word and its example sentence.
func Prompt(word, sentence string) string {
	if strings.TrimSpace(sentence) == "" {
		return fmt.Sprintf("Define the word %q. Provide a concise definition of the word and then use it in a sentence.", word)
	}
	return fmt.Sprintf("Define the word %q in the context of the following sentence: %q. Provide a concise definition of a word and then define it in sentence.", word, sentence)
}

// APIKeyEnv returns the environment variable holding the provider's key.
func APIKeyEnv(provider string) string {
	switch normalizeProvider(provider) {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// New creates the provider selected by cfg. An empty API key is looked up
// in the provider's environment variable.
func New(ctx context.Context, cfg model.DefinitionConfig) (Provider, error) {
	provider := normalizeProvider(cfg.Provider)
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(APIKeyEnv(provider)))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, APIKeyEnv(provider))
	}
	switch provider {
	case ProviderGemini:
		return NewGeminiProvider(ctx, apiKey, cfg.Model)
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown definition provider %q (use %s or %s)", cfg.Provider, ProviderGemini, ProviderOpenAI)
	}
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return ProviderGemini
	}
	return provider
}

func cleanDefinition(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyDefinition
	}
	return text, nil
}
