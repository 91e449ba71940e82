// Package bot provides headless players that drive a game.Round without a
// terminal. They play by fixed rules and carry no strategy.
package bot

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Kind names a bot implementation
type Kind string

const (
	KindMimic  Kind = "mimic"
	KindRandom Kind = "random"
)

// Kinds lists the available bots
var Kinds = []Kind{KindMimic, KindRandom}

// Player is a headless game.Console
type Player interface {
	game.Console
	// Rejected is how many answers the round refused
	Rejected() int
}

// New creates a bot by kind. Every bot plays the same number of hands with
// the same bet each round.
func New(kind Kind, hands, bet int, rng *rand.Rand, logger *log.Logger) (Player, error) {
	if hands < 1 {
		return nil, fmt.Errorf("hands must be at least 1, got %d", hands)
	}
	if bet < 1 {
		return nil, fmt.Errorf("bet must be positive, got %d", bet)
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := base{hands: hands, bet: bet, logger: logger.With("bot", string(kind))}
	switch kind {
	case KindMimic:
		return &DealerMimic{base: b}, nil
	case KindRandom:
		if rng == nil {
			return nil, fmt.Errorf("random bot requires an RNG")
		}
		return &RandomPlayer{base: b, rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", kind, Kinds)
	}
}

// base answers bets and hand counts and remembers the last table view
type base struct {
	hands    int
	bet      int
	logger   *log.Logger
	view     game.TableView
	rejected int
}

func (b *base) RequestHandCount() (int, error) { return b.hands, nil }

func (b *base) RequestBet(int) (int, error) { return b.bet, nil }

func (b *base) DisplayState(view game.TableView) { b.view = view }

func (b *base) DisplayResult(s game.Settlement) {
	b.logger.Debug("Hand result", "hand", s.Hand, "outcome", s.Outcome, "payout", s.Payout)
}

func (b *base) DisplayError(err error) {
	b.rejected++
	b.logger.Warn("Answer rejected", "error", err)
}

func (b *base) Rejected() int { return b.rejected }

// activeValue returns the value of the hand being played
func (b *base) activeValue(hand int) (int, bool) {
	h, ok := b.view.ActiveHand()
	if !ok || h.ID != hand {
		return 0, false
	}
	return h.Value, true
}
