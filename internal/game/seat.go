package game

// Seat is one player hand in play together with its wager. A round holds
// seats in an ordered slice; splitting appends new ones.
type Seat struct {
	ID        int // 1-based, stable for the whole round
	Hand      *Hand
	Bet       int
	Natural   bool // natural blackjack held back for settlement
	Doubled   bool
	Split     bool // took part in a split
	SplitFrom int  // ID of the seat this one was split from, 0 if dealt
}

// IsLive returns true if the seat has not busted
func (s *Seat) IsLive() bool {
	return s.Hand.Value() <= 21
}
