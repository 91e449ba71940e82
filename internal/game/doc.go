// Package game implements the blackjack rules engine.
//
// The main type is Round, which runs a single round from bets to settlement:
// dealing, natural blackjack checks, player decisions (hit, stand, double,
// split), the dealer's stand-on-17 policy, and per-hand payouts.
//
// # Basic Usage
//
// A Round talks to the outside world only through a Console, which supplies
// bets and decisions and receives state to display:
//
//	r := game.NewRound(console, game.WithRNG(randutil.New(42)))
//	result, err := r.Play()
//	if err != nil {
//	    // deck exhaustion or a console failure
//	}
//	for _, s := range result.Settlements {
//	    fmt.Println(s.Hand, s.Outcome, s.Payout)
//	}
//
// # Deterministic Testing
//
// A stacked deck fixes the exact card order:
//
//	d := deck.NewStackedDeck(deck.MustParseCards("9cTd2s5h8c3d")...)
//	r := game.NewRound(console, game.WithDeck(d))
//
// # Architecture
//
// Round delegates to small pieces that can be used on their own:
//   - Hand: card list with soft/hard ace valuation
//   - Apply: the per-hand transition for one decision
//   - Settle: payout for a finished hand against the dealer
//
// Splitting grows the seat list while the player turn loop is running, so
// the loop walks seats by index and re-reads the length every iteration.
package game
