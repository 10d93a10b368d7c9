package gui

import (
	"math/rand"
	"time"

	"codeberg.org/snonux/hanjarecall/internal/card"
)

// Phase is the side of the flashcard currently shown
type Phase int

const (
	// PhaseHanja shows only the character
	PhaseHanja Phase = iota
	// PhaseMeaning shows the reading and meaning alongside the character
	PhaseMeaning
)

// Session holds the state of one study run. It is owned by the
// presentation layer and constructed fresh whenever a dataset is
// loaded; no study state lives in package globals.
type Session struct {
	cards   []card.Card
	pos     int
	phase   Phase
	running bool

	// Display durations for each phase
	HanjaTime   time.Duration
	MeaningTime time.Duration
}

// NewSession creates a session over cards with the given phase durations
func NewSession(cards []card.Card, hanjaTime, meaningTime time.Duration) *Session {
	return &Session{
		cards:       cards,
		HanjaTime:   hanjaTime,
		MeaningTime: meaningTime,
	}
}

// Len returns the number of cards in the session
func (s *Session) Len() int {
	return len(s.cards)
}

// Empty reports whether the session has no cards
func (s *Session) Empty() bool {
	return len(s.cards) == 0
}

// Current returns the card at the current position
func (s *Session) Current() card.Card {
	if s.Empty() {
		return card.Card{}
	}
	return s.cards[s.pos]
}

// Cards returns the session's cards in their current order
func (s *Session) Cards() []card.Card {
	return s.cards
}

// Position returns the zero-based index of the current card
func (s *Session) Position() int {
	return s.pos
}

// Phase returns the currently shown side
func (s *Session) Phase() Phase {
	return s.phase
}

// Running reports whether the timed cycle is active
func (s *Session) Running() bool {
	return s.running
}

// Start marks the timed cycle active, beginning with the character side
func (s *Session) Start() {
	s.running = true
	s.phase = PhaseHanja
}

// Stop halts the timed cycle
func (s *Session) Stop() {
	s.running = false
}

// Toggle advances the two-phase cycle: character -> reading/meaning ->
// next character. It returns the duration the new phase should stay on
// screen.
func (s *Session) Toggle() time.Duration {
	if s.phase == PhaseHanja {
		s.phase = PhaseMeaning
		return s.MeaningTime
	}
	s.phase = PhaseHanja
	s.advance(1)
	return s.HanjaTime
}

// Next moves to the next card, wrapping around, and resets the phase to
// the character side
func (s *Session) Next() {
	s.advance(1)
	s.phase = PhaseHanja
}

// Prev moves to the previous card, wrapping around, and resets the
// phase to the character side
func (s *Session) Prev() {
	s.advance(-1)
	s.phase = PhaseHanja
}

// Shuffle randomizes the card order and rewinds to the first card
func (s *Session) Shuffle() {
	rand.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.pos = 0
	s.phase = PhaseHanja
}

func (s *Session) advance(delta int) {
	if s.Empty() {
		return
	}
	s.pos = (s.pos + delta + len(s.cards)) % len(s.cards)
}
