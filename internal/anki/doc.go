// Package anki exports Hanja datasets as Anki import files, either as
// a legacy CSV or as a complete .apkg package with forward and reverse
// card templates.
package anki
