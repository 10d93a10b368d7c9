package enrich

import (
	"context"
	"fmt"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// ProgressCallback is called after each card with the current position
// and a status message
type ProgressCallback func(current, total int, message string)

// Enricher runs a provider over a whole dataset
type Enricher struct {
	provider Provider
	progress ProgressCallback
}

// NewEnricher creates an enricher for the given provider
func NewEnricher(provider Provider) *Enricher {
	return &Enricher{provider: provider}
}

// SetProgressCallback sets an optional progress callback
func (e *Enricher) SetProgressCallback(cb ProgressCallback) {
	e.progress = cb
}

// EnrichAll fills in missing readings and meanings across cards. Cards
// that already have both fields are passed through untouched. A failed
// card keeps its original fields; the first error is returned after the
// whole run so one bad card does not abort the batch.
func (e *Enricher) EnrichAll(ctx context.Context, cards []card.Card) ([]card.Card, error) {
	result := make([]card.Card, len(cards))
	copy(result, cards)

	var firstErr error
	for i, c := range result {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !NeedsEnrichment(c) {
			e.report(i+1, len(result), fmt.Sprintf("Skipping %s (complete)", c.Hanja))
			continue
		}

		e.report(i+1, len(result), fmt.Sprintf("Enriching %s", c.Hanja))
		enriched, err := e.provider.EnrichCard(ctx, c)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("enriching '%s': %w", c.Hanja, err)
			}
			continue
		}
		result[i] = enriched
	}

	return result, firstErr
}

func (e *Enricher) report(current, total int, message string) {
	if e.progress != nil {
		e.progress(current, total, message)
	}
}
