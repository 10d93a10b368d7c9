package internal

import "unicode"

// maxNameRunes bounds sanitized names so cache file names stay short
const maxNameRunes = 50

// SanitizeName creates a safe file name token from a dataset name.
// Anything that is not a letter, digit, hyphen or underscore becomes an
// underscore, and the result is truncated to 50 runes.
func SanitizeName(s string) string {
	runes := []rune(s)
	if len(runes) > maxNameRunes {
		runes = runes[:maxNameRunes]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}
