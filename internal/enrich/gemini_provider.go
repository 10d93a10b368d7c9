package enrich

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// GeminiProvider enriches cards using the Google Gemini API
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini enrichment provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// EnrichCard fills in the missing reading and meaning of a card
func (p *GeminiProvider) EnrichCard(ctx context.Context, c card.Card) (card.Card, error) {
	if !NeedsEnrichment(c) {
		return c, nil
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel,
		genai.Text(buildPrompt(c)), nil)
	if err != nil {
		return c, fmt.Errorf("Gemini API error: %w", err)
	}

	answer := resp.Text()
	if answer == "" {
		return c, fmt.Errorf("no answer returned for '%s'", c.Hanja)
	}

	return parseAnswer(c, answer)
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the provider is properly configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
