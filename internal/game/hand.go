package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is an ordered collection of cards held by one player hand or the dealer
type Hand struct {
	cards []deck.Card
	aces  int // number of Aces currently held
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{cards: make([]deck.Card, 0, len(cards)+2)}
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(c deck.Card) {
	h.cards = append(h.cards, c)
	if c.IsAce() {
		h.aces++
	}
}

// Cards returns a copy of the cards in draw order
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Card returns the i-th card dealt to the hand
func (h *Hand) Card(i int) deck.Card {
	return h.cards[i]
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Aces returns the number of Aces in the hand
func (h *Hand) Aces() int {
	return h.aces
}

// Value returns the best total for the hand, counting Aces as 11 and
// dropping them to 1 one at a time while the hand would otherwise bust.
func (h *Hand) Value() int {
	total, _ := h.value()
	return total
}

// IsSoft returns true if an Ace is still being counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := h.value()
	return soft
}

// IsBust returns true if the hand is over 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// IsBlackjack returns true for exactly two cards totalling 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == 21
}

// CanSplit returns true for exactly two cards of the same rank.
// A Ten and a King have equal value but do not split.
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// String returns the cards and total (e.g., "A♠ K♥ (21)")
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), h.Value())
}

// value is recomputed from the live cards on every call; later hits change
// how many Aces need reducing.
func (h *Hand) value() (int, bool) {
	total := 0
	for _, c := range h.cards {
		total += c.Value()
	}
	soft := h.aces
	for total > 21 && soft > 0 {
		total -= 10
		soft--
	}
	return total, soft > 0
}

// split detaches and returns the second card of a two-card hand
func (h *Hand) split() deck.Card {
	c := h.cards[1]
	h.cards = h.cards[:1]
	if c.IsAce() {
		h.aces--
	}
	return c
}
