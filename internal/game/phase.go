package game

// Phase is a stage of a round. Rounds only move forward.
type Phase int

const (
	PhaseAwaitingBets Phase = iota
	PhaseDealing
	PhaseNaturalCheck
	PhasePlayerTurns
	PhaseDealerTurn
	PhaseSettlement
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingBets:
		return "awaiting bets"
	case PhaseDealing:
		return "dealing"
	case PhaseNaturalCheck:
		return "natural check"
	case PhasePlayerTurns:
		return "player turns"
	case PhaseDealerTurn:
		return "dealer turn"
	case PhaseSettlement:
		return "settlement"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
