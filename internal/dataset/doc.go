// Package dataset converts tabular sources into validated Hanja cards.
// It reads local spreadsheet files and resolves shareable Google Sheets
// URLs to their CSV export endpoints, independent of where the rows
// came from.
package dataset
