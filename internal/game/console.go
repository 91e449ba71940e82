package game

import "github.com/lox/blackjack/internal/deck"

// Console is everything a Round needs from the outside world. Hand numbers
// passed to it are seat IDs: 1-based and stable for the round, so a hand
// keeps its number when earlier hands leave play.
//
// Errors wrapping ErrInvalidInput are reported back through DisplayError and
// the request is repeated. Any other error ends the round.
type Console interface {
	RequestHandCount() (int, error)
	RequestBet(hand int) (int, error)
	RequestDecision(hand int, actions []Action) (Action, error)

	DisplayState(view TableView)
	DisplayResult(s Settlement)
	DisplayError(err error)
}

// HandView is the read-only state of one player hand
type HandView struct {
	ID      int
	Cards   []deck.Card
	Value   int
	Soft    bool
	Bet     int
	Natural bool
	Doubled bool
}

// TableView is the read-only state handed to DisplayState. While the
// dealer's hole card is hidden it is left out of Dealer entirely.
type TableView struct {
	Phase        Phase
	Hands        []HandView
	Active       int // ID of the hand being played, 0 if none
	Dealer       []deck.Card
	DealerValue  int // value of the visible dealer cards
	DealerHidden bool
}

// ActiveHand returns the view of the hand being played
func (v TableView) ActiveHand() (HandView, bool) {
	for _, h := range v.Hands {
		if h.ID == v.Active {
			return h, true
		}
	}
	return HandView{}, false
}
