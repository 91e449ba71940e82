package bot

import (
	"math/rand/v2"

	"github.com/lox/blackjack/internal/game"
)

// RandomPlayer picks uniformly among the offered actions
type RandomPlayer struct {
	base
	rng *rand.Rand
}

func (r *RandomPlayer) RequestDecision(hand int, actions []game.Action) (game.Action, error) {
	return actions[r.rng.IntN(len(actions))], nil
}
