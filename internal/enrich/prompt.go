package enrich

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// buildPrompt asks for the missing fields of a card in a fixed
// pipe-separated format so the answer can be parsed without a
// structured output mode
func buildPrompt(c card.Card) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("The Hanja (Korean Chinese character) is '%s'.", c.Hanja))
	if c.Reading != "" {
		sb.WriteString(fmt.Sprintf(" Its Korean reading is '%s'.", c.Reading))
	}
	if c.Meaning != "" {
		sb.WriteString(fmt.Sprintf(" Its meaning is '%s'.", c.Meaning))
	}
	sb.WriteString(" Reply with exactly one line in the format 'reading|meaning', where reading is the Korean reading in Hangul and meaning is a short English meaning. No other text.")
	return sb.String()
}

// parseAnswer applies a 'reading|meaning' answer to the card, filling
// only the fields that were empty
func parseAnswer(c card.Card, answer string) (card.Card, error) {
	answer = strings.TrimSpace(answer)
	parts := strings.SplitN(answer, "|", 2)
	if len(parts) != 2 {
		return c, fmt.Errorf("unexpected answer format: %q", answer)
	}

	if c.Reading == "" {
		c.Reading = strings.TrimSpace(parts[0])
	}
	if c.Meaning == "" {
		c.Meaning = strings.TrimSpace(parts[1])
	}
	return c, nil
}

// NeedsEnrichment reports whether the card is missing a reading or meaning
func NeedsEnrichment(c card.Card) bool {
	return c.Reading == "" || c.Meaning == ""
}
