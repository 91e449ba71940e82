package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// Round runs one round of blackjack: bets, the initial deal, natural
// checks, player turns, the dealer's turn and settlement. A Round is used
// once; build a new one (and so a fresh deck) for every round.
type Round struct {
	id       string
	console  Console
	logger   *log.Logger
	deck     *deck.Deck
	dealer   *Hand
	seats    []*Seat
	phase    Phase
	maxHands int
	lastID   int
	played   bool
	result   *Result
}

// NewRound creates a round that talks to the given console
func NewRound(console Console, opts ...RoundOption) *Round {
	if console == nil {
		panic("console is required for round creation")
	}

	cfg := &roundConfig{maxHands: DefaultMaxHands}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.maxHands < 1 {
		cfg.maxHands = DefaultMaxHands
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()[:8]
	}

	d := cfg.deck
	if d == nil {
		rng := cfg.rng
		if rng == nil {
			var seed int64
			rng, seed = randutil.NewFromTime()
			cfg.logger.Debug("Seeded deck from clock", "round", cfg.id, "seed", seed)
		}
		d = deck.NewDeck(rng)
	}

	return &Round{
		id:       cfg.id,
		console:  console,
		logger:   cfg.logger.With("round", cfg.id),
		deck:     d,
		dealer:   NewHand(),
		phase:    PhaseAwaitingBets,
		maxHands: cfg.maxHands,
		result:   &Result{ID: cfg.id},
	}
}

// ID returns the round ID
func (r *Round) ID() string {
	return r.id
}

// Phase returns the phase the round is in, or stopped in after an error
func (r *Round) Phase() Phase {
	return r.phase
}

// Play runs the round to completion. The only errors are console failures
// and deck exhaustion (wrapping deck.ErrDeckExhausted); either leaves the
// round stopped in the phase where it happened.
func (r *Round) Play() (*Result, error) {
	if r.played {
		return nil, fmt.Errorf("round %s already played", r.id)
	}
	r.played = true

	r.logger.Debug("Starting round", "cards", r.deck.Remaining())

	if err := r.takeBets(); err != nil {
		return nil, err
	}
	if err := r.dealInitial(); err != nil {
		return nil, fmt.Errorf("initial deal: %w", err)
	}
	r.checkNaturals()
	if err := r.playerTurns(); err != nil {
		return nil, err
	}
	if err := r.dealerTurn(); err != nil {
		return nil, fmt.Errorf("dealer turn: %w", err)
	}
	r.settle()

	r.phase = PhaseDone
	r.logger.Debug("Round complete",
		"wagered", r.result.Wagered(),
		"returned", r.result.Returned(),
		"net", r.result.Net())
	return r.result, nil
}

func (r *Round) takeBets() error {
	r.phase = PhaseAwaitingBets

	count, err := r.requestHandCount()
	if err != nil {
		return err
	}

	for range count {
		id := r.nextID()
		bet, err := r.requestBet(id)
		if err != nil {
			return err
		}
		r.seats = append(r.seats, &Seat{ID: id, Hand: NewHand(), Bet: bet})
		r.logger.Debug("Bet placed", "hand", id, "bet", bet)
	}
	return nil
}

func (r *Round) requestHandCount() (int, error) {
	for {
		n, err := r.console.RequestHandCount()
		if err == nil && (n < 1 || n > r.maxHands) {
			err = &InvalidHandCountError{Count: n, Max: r.maxHands}
		}
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			return 0, fmt.Errorf("request hand count: %w", err)
		}
		r.reject(err)
	}
}

func (r *Round) requestBet(hand int) (int, error) {
	for {
		bet, err := r.console.RequestBet(hand)
		if err == nil && bet <= 0 {
			err = &InvalidBetError{Hand: hand, Amount: bet}
		}
		if err == nil {
			return bet, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			return 0, fmt.Errorf("request bet for hand %d: %w", hand, err)
		}
		r.reject(err)
	}
}

func (r *Round) requestDecision(s *Seat) (Action, error) {
	actions := ValidActions(s)
	for {
		a, err := r.console.RequestDecision(s.ID, actions)
		if err == nil && !offered(actions, a) {
			err = &InvalidDecisionError{Hand: s.ID, Action: a, Offered: actions}
		}
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			return 0, fmt.Errorf("request decision for hand %d: %w", s.ID, err)
		}
		r.reject(err)
	}
}

func (r *Round) reject(err error) {
	r.logger.Debug("Rejected input", "error", err)
	r.console.DisplayError(err)
}

// dealInitial deals two cards each, round-robin: every hand then the
// dealer, twice.
func (r *Round) dealInitial() error {
	r.phase = PhaseDealing
	for range 2 {
		for _, s := range r.seats {
			if err := r.drawInto(s.Hand); err != nil {
				return err
			}
		}
		if err := r.drawInto(r.dealer); err != nil {
			return err
		}
	}
	r.logger.Debug("Dealt initial cards", "upcard", r.dealer.Card(1), "remaining", r.deck.Remaining())
	r.console.DisplayState(r.view(0, true))
	return nil
}

// checkNaturals pays naturals at once when the dealer's up card is under
// 10 and removes those seats. Against a 10 or Ace up the natural is
// flagged and kept for settlement.
func (r *Round) checkNaturals() {
	r.phase = PhaseNaturalCheck
	up := r.dealer.Card(1)

	kept := r.seats[:0]
	for _, s := range r.seats {
		if !s.Hand.IsBlackjack() {
			kept = append(kept, s)
			continue
		}
		if up.Value() >= 10 {
			s.Natural = true
			kept = append(kept, s)
			r.logger.Debug("Natural held for settlement", "hand", s.ID, "upcard", up)
			continue
		}
		r.record(settleNatural(s, r.dealer))
	}
	clear(r.seats[len(kept):])
	r.seats = kept
}

// playerTurns walks seats by index; splits append seats while the loop
// runs, so the bound is re-read on every iteration.
func (r *Round) playerTurns() error {
	r.phase = PhasePlayerTurns
	for i := 0; i < len(r.seats); i++ {
		if err := r.playSeat(r.seats[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Round) playSeat(s *Seat) error {
	for s.Hand.Value() < 21 {
		r.console.DisplayState(r.view(s.ID, true))

		action, err := r.requestDecision(s)
		if err != nil {
			return err
		}

		step, err := Apply(s, action, r.deck)
		if err != nil {
			return fmt.Errorf("hand %d %s: %w", s.ID, action, err)
		}

		r.result.Actions = append(r.result.Actions, ActionRecord{
			Hand:   s.ID,
			Action: action,
			Drawn:  step.Drawn,
			Value:  s.Hand.Value(),
			Bet:    s.Bet,
		})
		r.logger.Debug("Player action",
			"hand", s.ID,
			"action", action,
			"drawn", step.Drawn,
			"value", s.Hand.Value(),
			"bet", s.Bet)

		if step.Spawned != nil {
			step.Spawned.ID = r.nextID()
			r.seats = append(r.seats, step.Spawned)
			r.logger.Debug("Hand split", "hand", s.ID, "new", step.Spawned.ID)
		}
		if step.Done {
			break
		}
	}
	return nil
}

// dealerTurn draws to 17 unless every remaining hand has busted
func (r *Round) dealerTurn() error {
	r.phase = PhaseDealerTurn

	if r.anyLive() {
		for r.dealer.Value() < 17 {
			if err := r.drawInto(r.dealer); err != nil {
				return err
			}
		}
	}

	r.logger.Debug("Dealer stands", "hand", r.dealer, "value", r.dealer.Value())
	r.console.DisplayState(r.view(0, false))
	return nil
}

func (r *Round) settle() {
	r.phase = PhaseSettlement
	for _, s := range r.seats {
		r.record(Settle(s, r.dealer))
	}
	r.result.Dealer = r.dealer.Cards()
	r.result.DealerValue = r.dealer.Value()
}

func (r *Round) record(st Settlement) {
	r.result.Settlements = append(r.result.Settlements, st)
	r.logger.Debug("Hand settled",
		"hand", st.Hand,
		"outcome", st.Outcome,
		"bet", st.Bet,
		"payout", st.Payout,
		"immediate", st.Immediate)
	r.console.DisplayResult(st)
}

func (r *Round) anyLive() bool {
	for _, s := range r.seats {
		if s.IsLive() {
			return true
		}
	}
	return false
}

func (r *Round) drawInto(h *Hand) error {
	c, err := r.deck.Draw()
	if err != nil {
		return err
	}
	h.AddCard(c)
	return nil
}

func (r *Round) nextID() int {
	r.lastID++
	return r.lastID
}

func (r *Round) view(active int, hidden bool) TableView {
	v := TableView{
		Phase:        r.phase,
		Hands:        make([]HandView, len(r.seats)),
		Active:       active,
		DealerHidden: hidden,
	}
	for i, s := range r.seats {
		v.Hands[i] = HandView{
			ID:      s.ID,
			Cards:   s.Hand.Cards(),
			Value:   s.Hand.Value(),
			Soft:    s.Hand.IsSoft(),
			Bet:     s.Bet,
			Natural: s.Natural,
			Doubled: s.Doubled,
		}
	}
	if hidden && r.dealer.Len() >= 2 {
		up := r.dealer.Card(1)
		v.Dealer = []deck.Card{up}
		v.DealerValue = up.Value()
	} else {
		v.Dealer = r.dealer.Cards()
		v.DealerValue = r.dealer.Value()
	}
	return v
}
