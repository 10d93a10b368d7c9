package processor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/hanjarecall/internal"
	"codeberg.org/snonux/hanjarecall/internal/anki"
	"codeberg.org/snonux/hanjarecall/internal/cache"
	"codeberg.org/snonux/hanjarecall/internal/card"
	"codeberg.org/snonux/hanjarecall/internal/cli"
	"codeberg.org/snonux/hanjarecall/internal/dataset"
	"codeberg.org/snonux/hanjarecall/internal/enrich"
	"codeberg.org/snonux/hanjarecall/internal/gui"
)

// Processor handles the headless dataset operations
type Processor struct {
	flags   *cli.Flags
	store   *cache.Store
	fetcher *dataset.Fetcher
}

// NewProcessor creates a new dataset processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:   flags,
		store:   cache.NewStore(flags.CacheDir),
		fetcher: dataset.NewFetcher(),
	}
}

// LoadFile loads a local spreadsheet, caches it, and returns the cards
// with the dataset name
func (p *Processor) LoadFile(ctx context.Context) ([]card.Card, string, error) {
	fmt.Printf("Loading %s...\n", p.flags.File)

	cards, err := dataset.LoadFile(p.flags.File)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load '%s': %w", p.flags.File, err)
	}

	name := p.flags.Name
	if name == "" {
		name = dataset.DatasetName(p.flags.File)
	}

	cards, err = p.maybeEnrich(ctx, cards)
	if err != nil {
		return nil, "", err
	}

	if _, err := p.store.Add(name, cache.SourceLocal, p.flags.File, cards); err != nil {
		return nil, "", fmt.Errorf("failed to cache dataset: %w", err)
	}

	fmt.Printf("Cached %d Hanja as '%s'\n", len(cards), name)
	return cards, name, nil
}

// LoadSheet downloads a published Google Sheet, caches it, and returns
// the cards with the dataset name
func (p *Processor) LoadSheet(ctx context.Context) ([]card.Card, string, error) {
	fmt.Printf("Downloading sheet...\n")

	cards, err := p.fetcher.FetchSheet(ctx, p.flags.SheetURL, p.flags.Gid)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load sheet: %w", err)
	}

	name := p.flags.Name
	if name == "" {
		name = "GoogleSheet_" + time.Now().Format("20060102")
	}

	cards, err = p.maybeEnrich(ctx, cards)
	if err != nil {
		return nil, "", err
	}

	if _, err := p.store.Add(name, cache.SourceGoogle, p.flags.SheetURL, cards); err != nil {
		return nil, "", fmt.Errorf("failed to cache dataset: %w", err)
	}

	fmt.Printf("Cached %d Hanja as '%s'\n", len(cards), name)
	return cards, name, nil
}

// maybeEnrich runs AI enrichment over the cards when --enrich is set
func (p *Processor) maybeEnrich(ctx context.Context, cards []card.Card) ([]card.Card, error) {
	if !p.flags.Enrich {
		return cards, nil
	}

	provider, err := p.createEnrichProvider(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Enriching cards with %s...\n", provider.Name())
	enricher := enrich.NewEnricher(provider)
	enricher.SetProgressCallback(func(current, total int, message string) {
		fmt.Printf("  %d/%d: %s\n", current, total, message)
	})

	enriched, err := enricher.EnrichAll(ctx, cards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: enrichment incomplete: %v\n", err)
	}
	return enriched, nil
}

func (p *Processor) createEnrichProvider(ctx context.Context) (enrich.Provider, error) {
	config := &enrich.Config{
		Provider:    p.flags.EnrichProvider,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: p.flags.OpenAIModel,
		GeminiKey:   cli.GetGeminiKey(),
		GeminiModel: p.flags.GeminiModel,
	}

	// Use config file values if not overridden by flags
	if p.flags.OpenAIModel == "gpt-4o-mini" && viper.IsSet("enrich.openai_model") {
		config.OpenAIModel = viper.GetString("enrich.openai_model")
	}
	if p.flags.GeminiModel == "gemini-2.0-flash" && viper.IsSet("enrich.gemini_model") {
		config.GeminiModel = viper.GetString("enrich.gemini_model")
	}

	return enrich.NewProvider(ctx, config)
}

// ListCached prints the cached datasets, most recent first
func (p *Processor) ListCached() error {
	idx := p.store.LoadIndex()
	if len(idx.Files) == 0 {
		fmt.Println("No cached datasets.")
		return nil
	}

	fmt.Printf("Cached datasets in %s:\n\n", p.store.Dir())
	for i, e := range idx.Files {
		source := "local file"
		if e.SourceType == cache.SourceGoogle {
			source = "Google Sheet"
		}
		fmt.Printf("%2d. %s (%d cards, %s)\n", i+1, e.Name, e.Count, source)
		fmt.Printf("    source: %s\n", e.SourcePath)
		fmt.Printf("    cached: %s\n", e.CachedAt)
	}
	return nil
}

// ClearCache removes all cached datasets
func (p *Processor) ClearCache() error {
	if err := p.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Println("Cache cleared.")
	return nil
}

// GenerateAnkiFile exports the cards as an Anki deck and returns the
// output path
func (p *Processor) GenerateAnkiFile(cards []card.Card, name string) (string, error) {
	outputPath := p.flags.Output

	if p.flags.AnkiCSV {
		if outputPath == "" {
			outputPath = internal.SanitizeName(name) + ".csv"
		}
		gen := anki.NewGenerator(&anki.GeneratorOptions{
			OutputPath:     outputPath,
			IncludeHeaders: true,
		})
		gen.AddCards(cards)
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		if outputPath == "" {
			outputPath = internal.SanitizeName(name) + ".apkg"
		}
		gen := anki.NewAPKGGenerator(p.flags.DeckName)
		gen.AddCards(cards)
		if err := gen.GenerateAPKG(outputPath); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	fmt.Printf("  Exported %d cards\n", len(cards))
	return outputPath, nil
}

// ExportCached exports a cached dataset as an Anki deck without
// reloading its source: the newest one, or the one selected by --name
func (p *Processor) ExportCached() (string, error) {
	idx := p.store.LoadIndex()
	if len(idx.Files) == 0 {
		return "", fmt.Errorf("no cached datasets to export")
	}

	entry := idx.Files[0]
	if p.flags.Name != "" {
		found := false
		for _, e := range idx.Files {
			if e.Name == p.flags.Name {
				entry = e
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("no cached dataset named '%s'", p.flags.Name)
		}
	}

	cards, err := p.store.Load(entry.CacheFile)
	if err != nil {
		return "", fmt.Errorf("failed to load cached dataset '%s': %w", entry.Name, err)
	}

	return p.GenerateAnkiFile(cards, entry.Name)
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		CacheDir:       p.flags.CacheDir,
		HanjaSeconds:   p.flags.HanjaSeconds,
		MeaningSeconds: p.flags.MeaningSeconds,
		SheetGid:       p.flags.Gid,
		DeckName:       p.flags.DeckName,
	}

	// Use config file values if not overridden by flags
	if p.flags.HanjaSeconds == 2 && viper.IsSet("study.hanja_seconds") {
		guiConfig.HanjaSeconds = viper.GetInt("study.hanja_seconds")
	}
	if p.flags.MeaningSeconds == 2 && viper.IsSet("study.meaning_seconds") {
		guiConfig.MeaningSeconds = viper.GetInt("study.meaning_seconds")
	}

	app := gui.New(guiConfig)
	app.Run()

	return nil
}
