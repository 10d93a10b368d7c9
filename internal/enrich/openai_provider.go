package enrich

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// OpenAIProvider enriches cards using the OpenAI chat completion API
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI enrichment provider
func NewOpenAIProvider(config *Config) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}
}

// EnrichCard fills in the missing reading and meaning of a card
func (p *OpenAIProvider) EnrichCard(ctx context.Context, c card.Card) (card.Card, error) {
	if !NeedsEnrichment(c) {
		return c, nil
	}

	req := openai.ChatCompletionRequest{
		Model: p.config.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(c),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return c, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return c, fmt.Errorf("no answer returned for '%s'", c.Hanja)
	}

	return parseAnswer(c, resp.Choices[0].Message.Content)
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
