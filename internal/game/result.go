package game

import "github.com/lox/blackjack/internal/deck"

// ActionRecord is one applied decision
type ActionRecord struct {
	Hand   int
	Action Action
	Drawn  []deck.Card
	Value  int // hand value after the action
	Bet    int // hand bet after the action
}

// Result contains the results of a completed round
type Result struct {
	ID          string
	Settlements []Settlement // immediate naturals first, then in seat order
	Dealer      []deck.Card
	DealerValue int
	Actions     []ActionRecord
}

// Wagered returns the total of all bets at settlement
func (r *Result) Wagered() int {
	total := 0
	for _, s := range r.Settlements {
		total += s.Bet
	}
	return total
}

// Returned returns the total paid back to the player, stakes included
func (r *Result) Returned() float64 {
	total := 0.0
	for _, s := range r.Settlements {
		total += s.Payout
	}
	return total
}

// Net returns the player's overall gain or loss for the round
func (r *Result) Net() float64 {
	return r.Returned() - float64(r.Wagered())
}

// Settlement returns the settlement for a hand ID
func (r *Result) Settlement(hand int) (Settlement, bool) {
	for _, s := range r.Settlements {
		if s.Hand == hand {
			return s, true
		}
	}
	return Settlement{}, false
}
