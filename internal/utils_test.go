package internal

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "level1", "level1"},
		{"spaces become underscores", "Level 1 Hanja", "Level_1_Hanja"},
		{"keeps hyphen and underscore", "lvl-1_a", "lvl-1_a"},
		{"korean letters kept", "한자 1급", "한자_1급"},
		{"path characters replaced", "a/b\\c:d", "a_b_c_d"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	long := strings.Repeat("가", 80)
	got := SanitizeName(long)
	if n := len([]rune(got)); n != 50 {
		t.Errorf("Expected 50 runes, got %d", n)
	}
}
