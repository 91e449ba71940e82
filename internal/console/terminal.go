// Package console implements game.Console for a line-oriented terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Terminal reads answers one line at a time from in and writes the table to
// out. End of input is fatal to the round.
type Terminal struct {
	in       *bufio.Scanner
	out      io.Writer
	styles   styles
	maxHands int
}

var _ game.Console = (*Terminal)(nil)

// Option configures a Terminal
type Option func(*Terminal)

// WithColor sets the colour mode. Default is ColorAuto.
func WithColor(mode ColorMode) Option {
	return func(t *Terminal) {
		t.styles = newStyles(newRenderer(t.out, mode))
	}
}

// WithMaxHands sets the limit shown in the hand count prompt
func WithMaxHands(n int) Option {
	return func(t *Terminal) {
		if n > 0 {
			t.maxHands = n
		}
	}
}

// New creates a terminal console
func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:       bufio.NewScanner(in),
		out:      out,
		maxHands: game.DefaultMaxHands,
	}
	t.styles = newStyles(newRenderer(out, ColorAuto))
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *Terminal) prompt(format string, args ...any) {
	fmt.Fprint(t.out, t.styles.Prompt.Render(fmt.Sprintf(format, args...)))
}

func (t *Terminal) RequestHandCount() (int, error) {
	t.prompt("How many hands (1-%d)? ", t.maxHands)
	line, err := t.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, &game.InvalidHandCountError{Max: t.maxHands, Input: line}
	}
	return n, nil
}

func (t *Terminal) RequestBet(hand int) (int, error) {
	t.prompt("Bet for hand %d: $", hand)
	line, err := t.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimPrefix(line, "$"))
	if err != nil {
		return 0, &game.InvalidBetError{Hand: hand, Input: line}
	}
	return n, nil
}

func (t *Terminal) RequestDecision(hand int, actions []game.Action) (game.Action, error) {
	choices := make([]string, len(actions))
	for i, a := range actions {
		choices[i] = fmt.Sprintf("%s (%s)", a, a.Key())
	}
	t.prompt("Hand %d: %s? ", hand, strings.Join(choices, ", "))

	line, err := t.readLine()
	if err != nil {
		return 0, err
	}
	a, ok := game.ParseAction(line)
	if !ok {
		return 0, &game.InvalidDecisionError{Hand: hand, Input: line, Offered: actions}
	}
	return a, nil
}

func (t *Terminal) DisplayState(view game.TableView) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.styles.Header.Render(strings.ToUpper(view.Phase.String())))

	fmt.Fprintf(t.out, "%s %s\n", t.styles.Dealer.Render("Dealer:"), t.dealerCards(view))

	for _, h := range view.Hands {
		marker, style := "  ", t.styles.Hand
		if h.ID == view.Active {
			marker, style = "> ", t.styles.Active
		}
		fmt.Fprintf(t.out, "%s%s %s %s%s\n",
			marker,
			style.Render(fmt.Sprintf("Hand %d:", h.ID)),
			t.cards(h.Cards),
			value(h.Value, h.Soft),
			t.styles.Info.Render(handNotes(h)))
	}
}

func (t *Terminal) DisplayResult(s game.Settlement) {
	var line string
	switch {
	case s.Outcome == game.OutcomePush:
		line = t.styles.Push.Render(fmt.Sprintf("push, returned %s", Money(s.Payout)))
	case s.Outcome.IsWin():
		line = t.styles.Win.Render(fmt.Sprintf("%s, paid %s", s.Outcome, Money(s.Payout)))
	default:
		line = t.styles.Loss.Render(fmt.Sprintf("%s, lost %s", s.Outcome, Money(float64(s.Bet))))
	}
	fmt.Fprintf(t.out, "Hand %d (%d vs %d): %s\n", s.Hand, s.PlayerValue, s.DealerValue, line)
}

func (t *Terminal) DisplayError(err error) {
	fmt.Fprintln(t.out, t.styles.Error.Render(err.Error()))
}

// Banner prints a title line
func (t *Terminal) Banner(title string) {
	fmt.Fprintln(t.out, t.styles.Header.Render(title))
}

// Summary prints the running totals after a round
func (t *Terminal) Summary(rounds int, wagered int, returned float64) {
	net := returned - float64(wagered)
	style := t.styles.Push
	switch {
	case net > 0:
		style = t.styles.Win
	case net < 0:
		style = t.styles.Loss
	}
	fmt.Fprintf(t.out, "\nAfter %d round(s): wagered %s, returned %s, net %s\n",
		rounds, Money(float64(wagered)), Money(returned), style.Render(signedMoney(net)))
}

func (t *Terminal) dealerCards(view game.TableView) string {
	if view.DealerHidden {
		return fmt.Sprintf("%s, %s", t.styles.Hidden.Render("[Hidden]"), t.cards(view.Dealer))
	}
	return fmt.Sprintf("%s %s", t.cards(view.Dealer), value(view.DealerValue, false))
}

func (t *Terminal) cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = t.styles.CardRed.Render(c.String())
		} else {
			parts[i] = t.styles.CardBlack.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

func value(v int, soft bool) string {
	if soft {
		return fmt.Sprintf("(soft %d)", v)
	}
	return fmt.Sprintf("(%d)", v)
}

func handNotes(h game.HandView) string {
	notes := fmt.Sprintf(" bet %s", Money(float64(h.Bet)))
	if h.Doubled {
		notes += ", doubled"
	}
	if h.Natural {
		notes += ", blackjack"
	}
	return notes
}

// Money formats an amount with two decimals, e.g. $22.50
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func signedMoney(amount float64) string {
	if amount < 0 {
		return "-" + Money(-amount)
	}
	return "+" + Money(amount)
}
