package bot

import "github.com/lox/blackjack/internal/game"

// DealerMimic plays the dealer's policy: hit below 17, otherwise stand.
// It never doubles or splits.
type DealerMimic struct {
	base
}

func (m *DealerMimic) RequestDecision(hand int, actions []game.Action) (game.Action, error) {
	v, ok := m.activeValue(hand)
	if !ok {
		m.logger.Warn("No view of hand, standing", "hand", hand)
		return game.Stand, nil
	}
	if v < 17 {
		return game.Hit, nil
	}
	return game.Stand, nil
}
