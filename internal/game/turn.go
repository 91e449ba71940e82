package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Drawer supplies cards. *deck.Deck satisfies it.
type Drawer interface {
	Draw() (deck.Card, error)
}

// Step is the outcome of applying one decision to a seat
type Step struct {
	Done    bool        // the seat's turn is over
	Spawned *Seat       // new seat created by a split, not yet numbered
	Drawn   []deck.Card // cards drawn by this step, in order
}

// Apply applies a single decision to a seat, drawing from d as needed.
// The action must be one of ValidActions(s). On a split the new seat is
// returned in Step.Spawned for the caller to append; its ID is left zero.
func Apply(s *Seat, a Action, d Drawer) (Step, error) {
	actions := ValidActions(s)
	if !offered(actions, a) {
		return Step{}, &InvalidDecisionError{Hand: s.ID, Action: a, Offered: actions}
	}

	var step Step
	draw := func(h *Hand) error {
		c, err := d.Draw()
		if err != nil {
			return fmt.Errorf("draw for hand %d: %w", s.ID, err)
		}
		h.AddCard(c)
		step.Drawn = append(step.Drawn, c)
		return nil
	}

	switch a {
	case Hit:
		if err := draw(s.Hand); err != nil {
			return step, err
		}
		step.Done = s.Hand.Value() >= 21

	case Stand:
		step.Done = true

	case Double:
		s.Bet *= 2
		s.Doubled = true
		if err := draw(s.Hand); err != nil {
			return step, err
		}
		step.Done = true

	case Split:
		s.Split = true
		spawned := &Seat{
			Hand:      NewHand(s.Hand.split()),
			Bet:       s.Bet,
			Split:     true,
			SplitFrom: s.ID,
		}
		step.Spawned = spawned
		if err := draw(s.Hand); err != nil {
			return step, err
		}
		if err := draw(spawned.Hand); err != nil {
			return step, err
		}
	}

	return step, nil
}
