package game

// Payout multipliers are the total returned per unit bet, stake included.
// A natural pays 2.25x, not the 2.5x of a 3:2 table.
const (
	BlackjackPayout = 2.25
	WinPayout       = 2.0
	PushPayout      = 1.0
)

// Outcome is how a player hand finished against the dealer
type Outcome int

const (
	OutcomeLose Outcome = iota
	OutcomeBust
	OutcomePush
	OutcomeWin
	OutcomeDealerBust
	OutcomeBlackjack
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLose:
		return "lose"
	case OutcomeBust:
		return "bust"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeDealerBust:
		return "dealer bust"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Multiplier returns the payout multiple applied to the bet
func (o Outcome) Multiplier() float64 {
	switch o {
	case OutcomeBlackjack:
		return BlackjackPayout
	case OutcomeWin, OutcomeDealerBust:
		return WinPayout
	case OutcomePush:
		return PushPayout
	default:
		return 0
	}
}

// IsWin returns true for any outcome that pays more than the stake
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeDealerBust || o == OutcomeBlackjack
}

// IsLoss returns true for outcomes that forfeit the stake
func (o Outcome) IsLoss() bool {
	return o == OutcomeLose || o == OutcomeBust
}

// Settlement is the result for one player hand
type Settlement struct {
	Hand        int // seat ID
	Bet         int // bet at settlement time, after doubling
	Outcome     Outcome
	Payout      float64 // total returned, stake included
	PlayerValue int
	DealerValue int
	Immediate   bool // paid during the natural check, before play
	Doubled     bool
	Split       bool
}

// Net returns the player's gain or loss on the hand
func (s Settlement) Net() float64 {
	return s.Payout - float64(s.Bet)
}

// Settle compares a finished seat with the dealer's final hand using the
// seat's current bet. A retained natural pays 2.25x whatever the dealer holds.
func Settle(s *Seat, dealer *Hand) Settlement {
	player := s.Hand.Value()
	dv := dealer.Value()

	var outcome Outcome
	switch {
	case s.Natural:
		outcome = OutcomeBlackjack
	case player > 21:
		outcome = OutcomeBust
	case dv > 21:
		outcome = OutcomeDealerBust
	case player > dv:
		outcome = OutcomeWin
	case player < dv:
		outcome = OutcomeLose
	default:
		outcome = OutcomePush
	}

	return newSettlement(s, outcome, dv)
}

// settleNatural pays a natural immediately, before the dealer plays
func settleNatural(s *Seat, dealer *Hand) Settlement {
	st := newSettlement(s, OutcomeBlackjack, dealer.Value())
	st.Immediate = true
	return st
}

func newSettlement(s *Seat, outcome Outcome, dealerValue int) Settlement {
	return Settlement{
		Hand:        s.ID,
		Bet:         s.Bet,
		Outcome:     outcome,
		Payout:      float64(s.Bet) * outcome.Multiplier(),
		PlayerValue: s.Hand.Value(),
		DealerValue: dealerValue,
		Doubled:     s.Doubled,
		Split:       s.Split,
	}
}
