package card

import "strings"

// HeaderLabel is the literal column header used in Hanja spreadsheets.
// A row whose character cell equals it is a header row, not data.
const HeaderLabel = "한자"

// Card represents a single Hanja flashcard entry
type Card struct {
	Hanja   string `json:"hanja"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
}

// ParseRows extracts cards from tabular rows. The first column is an
// index/ID column and is ignored; columns 2-4 hold character, reading
// and meaning. Missing cells coerce to empty strings. Rows with an
// empty character cell or a header label are skipped.
func ParseRows(rows [][]string) []Card {
	cards := make([]Card, 0, len(rows))

	for _, row := range rows {
		c := Card{
			Hanja:   cell(row, 1),
			Reading: cell(row, 2),
			Meaning: cell(row, 3),
		}
		if c.Hanja == "" || c.Hanja == HeaderLabel {
			continue
		}
		cards = append(cards, c)
	}

	return cards
}

// cell returns the trimmed cell at index i, or "" when the row is short
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
