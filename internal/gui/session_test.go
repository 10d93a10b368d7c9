package gui

import (
	"testing"
	"time"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

func sessionCards() []card.Card {
	return []card.Card{
		{Hanja: "一", Reading: "il", Meaning: "one"},
		{Hanja: "二", Reading: "i", Meaning: "two"},
		{Hanja: "三", Reading: "sam", Meaning: "three"},
	}
}

func TestSessionToggleCycle(t *testing.T) {
	s := NewSession(sessionCards(), 2*time.Second, 3*time.Second)
	s.Start()

	if s.Phase() != PhaseHanja {
		t.Fatal("Session should start on the character side")
	}

	// Character side -> meaning side, same card
	d := s.Toggle()
	if s.Phase() != PhaseMeaning {
		t.Error("First toggle should show the meaning side")
	}
	if d != 3*time.Second {
		t.Errorf("Meaning phase duration = %v, want 3s", d)
	}
	if s.Current().Hanja != "一" {
		t.Errorf("Toggle to meaning should not advance, at %s", s.Current().Hanja)
	}

	// Meaning side -> next card's character side
	d = s.Toggle()
	if s.Phase() != PhaseHanja {
		t.Error("Second toggle should return to the character side")
	}
	if d != 2*time.Second {
		t.Errorf("Hanja phase duration = %v, want 2s", d)
	}
	if s.Current().Hanja != "二" {
		t.Errorf("Toggle past meaning should advance, at %s", s.Current().Hanja)
	}
}

func TestSessionToggleWrapsAround(t *testing.T) {
	s := NewSession(sessionCards(), time.Second, time.Second)
	s.Start()

	// Two toggles per card: after 3 full cycles we are back at card 0
	for i := 0; i < 6; i++ {
		s.Toggle()
	}
	if s.Position() != 0 {
		t.Errorf("Position after full cycle = %d, want 0", s.Position())
	}
}

func TestSessionNextPrevWrap(t *testing.T) {
	s := NewSession(sessionCards(), time.Second, time.Second)

	s.Prev()
	if s.Current().Hanja != "三" {
		t.Errorf("Prev from first card should wrap to last, got %s", s.Current().Hanja)
	}

	s.Next()
	if s.Current().Hanja != "一" {
		t.Errorf("Next from last card should wrap to first, got %s", s.Current().Hanja)
	}
}

func TestSessionNavigationResetsPhase(t *testing.T) {
	s := NewSession(sessionCards(), time.Second, time.Second)
	s.Start()
	s.Toggle() // meaning side

	s.Next()
	if s.Phase() != PhaseHanja {
		t.Error("Next should reset to the character side")
	}

	s.Toggle()
	s.Prev()
	if s.Phase() != PhaseHanja {
		t.Error("Prev should reset to the character side")
	}
}

func TestSessionShuffleKeepsAllCards(t *testing.T) {
	s := NewSession(sessionCards(), time.Second, time.Second)
	s.Next()
	s.Shuffle()

	if s.Position() != 0 {
		t.Error("Shuffle should rewind to the first card")
	}
	if s.Len() != 3 {
		t.Fatalf("Shuffle changed card count: %d", s.Len())
	}

	seen := make(map[string]bool)
	for i := 0; i < s.Len(); i++ {
		seen[s.Current().Hanja] = true
		s.Next()
	}
	for _, h := range []string{"一", "二", "三"} {
		if !seen[h] {
			t.Errorf("Card %s missing after shuffle", h)
		}
	}
}

func TestSessionEmpty(t *testing.T) {
	s := NewSession(nil, time.Second, time.Second)

	if !s.Empty() {
		t.Error("Session over nil cards should be empty")
	}

	// Navigation on an empty session must not panic
	s.Next()
	s.Prev()
	s.Toggle()
	if got := s.Current(); got.Hanja != "" {
		t.Errorf("Current on empty session = %+v", got)
	}
}

func TestSessionStartStop(t *testing.T) {
	s := NewSession(sessionCards(), time.Second, time.Second)

	if s.Running() {
		t.Error("New session should not be running")
	}
	s.Start()
	if !s.Running() {
		t.Error("Session should be running after Start")
	}
	s.Stop()
	if s.Running() {
		t.Error("Session should not be running after Stop")
	}
}
