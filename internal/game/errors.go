package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks input a Console or the engine rejected. A Round
// recovers from it by asking again; every other Console error ends the round.
var ErrInvalidInput = errors.New("invalid input")

// InvalidHandCountError reports a hand count outside 1..Max
type InvalidHandCountError struct {
	Count int
	Max   int
	Input string // raw text when it could not be parsed
}

func (e *InvalidHandCountError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid hand count %q: must be a number from 1 to %d", e.Input, e.Max)
	}
	return fmt.Sprintf("invalid hand count %d: must be from 1 to %d", e.Count, e.Max)
}

func (e *InvalidHandCountError) Unwrap() error { return ErrInvalidInput }

// InvalidBetError reports a non-positive or non-numeric bet
type InvalidBetError struct {
	Hand   int
	Amount int
	Input  string // raw text when it could not be parsed
}

func (e *InvalidBetError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid bet %q for hand %d: must be a positive number", e.Input, e.Hand)
	}
	return fmt.Sprintf("invalid bet %d for hand %d: must be positive", e.Amount, e.Hand)
}

func (e *InvalidBetError) Unwrap() error { return ErrInvalidInput }

// InvalidDecisionError reports a choice outside the offered actions
type InvalidDecisionError struct {
	Hand    int
	Action  Action
	Input   string // raw text when it could not be parsed
	Offered []Action
}

func (e *InvalidDecisionError) Error() string {
	names := make([]string, len(e.Offered))
	for i, a := range e.Offered {
		names[i] = a.String()
	}
	choice := e.Action.String()
	if e.Input != "" {
		choice = fmt.Sprintf("%q", e.Input)
	}
	return fmt.Sprintf("invalid decision %s for hand %d: choose one of %s", choice, e.Hand, strings.Join(names, ", "))
}

func (e *InvalidDecisionError) Unwrap() error { return ErrInvalidInput }
