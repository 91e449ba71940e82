package deck

import (
	"errors"
	"math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = 52

// ErrDeckExhausted is returned when drawing from an empty deck.
// Decks are never reshuffled mid-round.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered pile of cards. Draws come off the end of the slice.
type Deck struct {
	cards []Card
}

// NewDeck creates a standard 52-card deck shuffled once with the given RNG.
// The RNG is required to keep randomness explicit.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	d := &Deck{cards: make([]Card, 0, Size)}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	return d
}

// NewStackedDeck creates a deck that deals the given cards in order,
// first card first. Used for replays and deterministic tests.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
