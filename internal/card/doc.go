// Package card defines the Hanja flashcard record and the normalization
// of tabular spreadsheet rows into validated records.
package card
