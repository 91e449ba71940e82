package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
)

// DefaultMaxHands is the most hands one player may play in a round
const DefaultMaxHands = 4

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

type roundConfig struct {
	id       string
	rng      *rand.Rand
	deck     *deck.Deck
	logger   *log.Logger
	maxHands int
}

// WithRNG shuffles the round's deck with the given RNG.
func WithRNG(rng *rand.Rand) RoundOption {
	return func(c *roundConfig) {
		c.rng = rng
	}
}

// WithDeck uses a specific deck, such as a stacked one, instead of
// shuffling a new one. It overrides WithRNG.
func WithDeck(d *deck.Deck) RoundOption {
	return func(c *roundConfig) {
		c.deck = d
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// WithMaxHands caps how many hands may be requested.
// Default is DefaultMaxHands.
func WithMaxHands(n int) RoundOption {
	return func(c *roundConfig) {
		c.maxHands = n
	}
}

// WithID sets the round ID used in logs and the result.
func WithID(id string) RoundOption {
	return func(c *roundConfig) {
		c.id = id
	}
}
