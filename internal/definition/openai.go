package definition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// chatCompleter is the subset of the OpenAI client used here.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider implements Provider with the OpenAI chat API.
type OpenAIProvider struct {
	client chatCompleter
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	slog.Debug("initialized OpenAI definition provider", "model", model)
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

// Define implements Provider.
func (p *OpenAIProvider) Define(ctx context.Context, word, sentence string) (string, error) {
	slog.Debug("requesting definition", "provider", ProviderOpenAI, "word", word)
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(word, sentence)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyDefinition
	}
	return cleanDefinition(resp.Choices[0].Message.Content)
}

// Close implements Provider. The HTTP client holds no resources.
func (p *OpenAIProvider) Close() error {
	return nil
}
