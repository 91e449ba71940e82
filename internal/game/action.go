package game

import (
	"slices"
	"strings"
)

// Action is a player decision for one hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Key returns the single-letter shortcut for the action
func (a Action) Key() string {
	switch a {
	case Hit:
		return "h"
	case Stand:
		return "s"
	case Double:
		return "d"
	case Split:
		return "p"
	default:
		return "?"
	}
}

// ParseAction accepts a shortcut key or the full action name
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hit":
		return Hit, true
	case "s", "stand":
		return Stand, true
	case "d", "double", "double down":
		return Double, true
	case "p", "split":
		return Split, true
	default:
		return 0, false
	}
}

// ValidActions returns the decisions available to a seat right now.
// Hit and stand are always offered; double only on a two-card 9, 10 or 11;
// split only on a pair of identical ranks.
func ValidActions(s *Seat) []Action {
	actions := []Action{Hit, Stand}
	if s.Hand.Len() == 2 {
		if v := s.Hand.Value(); v >= 9 && v <= 11 {
			actions = append(actions, Double)
		}
	}
	if s.Hand.CanSplit() {
		actions = append(actions, Split)
	}
	return actions
}

func offered(actions []Action, a Action) bool {
	return slices.Contains(actions, a)
}
