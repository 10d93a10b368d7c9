package anki

import (
	"encoding/csv"
	"fmt"
	"os"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// GeneratorOptions configures the Anki CSV export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible CSV import files
type Generator struct {
	options *GeneratorOptions
	cards   []card.Card
}

// NewGenerator creates a new Anki CSV generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]card.Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(c card.Card) {
	g.cards = append(g.cards, c)
}

// AddCards adds all cards of a dataset to the collection
func (g *Generator) AddCards(cards []card.Card) {
	g.cards = append(g.cards, cards...)
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if g.options.IncludeHeaders {
		headers := []string{"Hanja", "Reading", "Meaning"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, c := range g.cards {
		record := []string{c.Hanja, c.Reading, c.Meaning}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	return nil
}
