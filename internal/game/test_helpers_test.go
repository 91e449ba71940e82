package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
)

var errScriptExhausted = errors.New("script exhausted")

// reply is one scripted answer: a number, an action, or an error
type reply struct {
	n      int
	action Action
	err    error
}

type decisionPrompt struct {
	hand    int
	actions []Action
}

// scriptedConsole answers requests from queues and records everything the
// round displays. An empty queue fails the round instead of blocking.
type scriptedConsole struct {
	counts    []reply
	bets      []reply
	decisions []reply

	prompts []decisionPrompt
	views   []TableView
	results []Settlement
	errs    []error
}

func newScript(hands int, bets ...int) *scriptedConsole {
	c := &scriptedConsole{counts: []reply{{n: hands}}}
	for _, b := range bets {
		c.bets = append(c.bets, reply{n: b})
	}
	return c
}

func (c *scriptedConsole) decide(actions ...Action) *scriptedConsole {
	for _, a := range actions {
		c.decisions = append(c.decisions, reply{action: a})
	}
	return c
}

func pop(q *[]reply) (reply, bool) {
	if len(*q) == 0 {
		return reply{}, false
	}
	r := (*q)[0]
	*q = (*q)[1:]
	return r, true
}

func (c *scriptedConsole) RequestHandCount() (int, error) {
	r, ok := pop(&c.counts)
	if !ok {
		return 0, errScriptExhausted
	}
	return r.n, r.err
}

func (c *scriptedConsole) RequestBet(hand int) (int, error) {
	r, ok := pop(&c.bets)
	if !ok {
		return 0, errScriptExhausted
	}
	return r.n, r.err
}

func (c *scriptedConsole) RequestDecision(hand int, actions []Action) (Action, error) {
	c.prompts = append(c.prompts, decisionPrompt{hand: hand, actions: actions})
	r, ok := pop(&c.decisions)
	if !ok {
		return 0, errScriptExhausted
	}
	return r.action, r.err
}

func (c *scriptedConsole) DisplayState(view TableView) { c.views = append(c.views, view) }
func (c *scriptedConsole) DisplayResult(s Settlement)  { c.results = append(c.results, s) }
func (c *scriptedConsole) DisplayError(err error)      { c.errs = append(c.errs, err) }

// stackedRound builds a round over a stacked deck. Deal order for one hand
// is player, dealer, player, dealer (the second dealer card is the up card).
func stackedRound(t *testing.T, c Console, cards string, opts ...RoundOption) *Round {
	t.Helper()
	d := deck.NewStackedDeck(deck.MustParseCards(cards)...)
	opts = append([]RoundOption{WithDeck(d), WithID("test"), WithLogger(log.New(io.Discard))}, opts...)
	return NewRound(c, opts...)
}

func hand(cards string) *Hand {
	return NewHand(deck.MustParseCards(cards)...)
}
