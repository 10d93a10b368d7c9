package anki

import (
	"archive/zip"
	"database/sql"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen == nil {
		t.Fatal("NewAPKGGenerator returned nil")
	}
	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}
	if len(gen.cards) != 0 {
		t.Errorf("Expected empty cards slice, got %d cards", len(gen.cards))
	}
	if gen.deckID == gen.modelID {
		t.Error("Deck and model IDs must differ")
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewAPKGGenerator("Test Hanja Deck")
	gen.AddCards([]card.Card{
		{Hanja: "漢", Reading: "han", Meaning: "Chinese"},
		{Hanja: "字", Reading: "ja", Meaning: "character"},
	})

	outputPath := filepath.Join(tempDir, "test.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}

	// Verify it's a valid zip with the expected members
	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Generated file is not a valid zip: %v", err)
	}
	defer reader.Close()

	members := make(map[string]bool)
	for _, f := range reader.File {
		members[f.Name] = true
	}
	if !members["collection.anki2"] {
		t.Error("Package missing collection.anki2")
	}
	if !members["media"] {
		t.Error("Package missing media mapping")
	}
}

func TestAPKGDatabaseContents(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewAPKGGenerator("DB Deck")
	gen.AddCard(card.Card{Hanja: "水", Reading: "su", Meaning: "water"})

	// Build just the database so the contents can be inspected
	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase failed: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var noteCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if noteCount != 1 {
		t.Errorf("Expected 1 note, got %d", noteCount)
	}

	// Forward and reverse card per note
	var cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if cardCount != 2 {
		t.Errorf("Expected 2 cards, got %d", cardCount)
	}

	var sfld string
	if err := db.QueryRow("SELECT sfld FROM notes").Scan(&sfld); err != nil {
		t.Fatalf("Failed to read sort field: %v", err)
	}
	if sfld != "水" {
		t.Errorf("Sort field = %s, want 水", sfld)
	}
}
