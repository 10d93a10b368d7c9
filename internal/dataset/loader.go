package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// ErrNoData is returned when a source parses fine but yields no cards,
// so callers can report "no data found" distinctly from a hard failure.
var ErrNoData = errors.New("no card data found in source")

// ErrNotSheetURL is returned when a URL does not look like a Google
// Sheets share link.
var ErrNotSheetURL = errors.New("not a Google Sheets URL")

// Share links carry the sheet ID either as a path segment or as a
// query parameter, depending on how the link was produced.
var sheetIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9-_]+)`),
}

// ExtractSheetID extracts the spreadsheet ID from a shareable Google
// Sheets URL
func ExtractSheetID(url string) (string, error) {
	for _, pattern := range sheetIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", ErrNotSheetURL
}

// CSVExportURL resolves a shareable Google Sheets URL to its CSV export
// endpoint for the given worksheet gid
func CSVExportURL(url, gid string) (string, error) {
	id, err := ExtractSheetID(url)
	if err != nil {
		return "", err
	}
	if gid == "" {
		gid = "0"
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", id, gid), nil
}

// ParseCSV reads CSV rows and normalizes them into cards
func ParseCSV(r io.Reader) ([]card.Card, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may have uneven column counts

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return card.ParseRows(rows), nil
}

// LoadFile loads cards from a local spreadsheet file. The first sheet
// of an .xlsx workbook is used; .csv files are read directly.
func LoadFile(path string) ([]card.Card, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadExcel(path)
	case ".csv":
		return loadCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format: %s", filepath.Ext(path))
	}
}

func loadExcel(path string) ([]card.Card, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets: %s", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	cards := card.ParseRows(rows)
	if len(cards) == 0 {
		return nil, ErrNoData
	}
	return cards, nil
}

func loadCSVFile(path string) ([]card.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	cards, err := ParseCSV(f)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrNoData
	}
	return cards, nil
}

// DatasetName derives a display name from a local file path
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
