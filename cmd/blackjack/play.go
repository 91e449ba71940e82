package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// PlayCmd plays interactive rounds at the terminal
type PlayCmd struct {
	Rounds int    `short:"n" default:"1" help:"Number of rounds to play"`
	Seed   *int64 `help:"Deterministic RNG seed (overrides the config file)"`
	Color  string `help:"Colour output: auto, always or never (overrides the config file)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Color != "" {
		cfg.Display.Color = c.Color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}

	logger, closeLog, err := setupLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	term := console.New(os.Stdin, os.Stdout,
		console.WithColor(cfg.ColorMode()),
		console.WithMaxHands(cfg.Game.MaxHands))

	return play(term, cfg, c.seed(cfg), c.Rounds, logger)
}

// seed picks the flag, then the config file, then the clock
func (c *PlayCmd) seed(cfg *config.Config) int64 {
	switch {
	case c.Seed != nil:
		return *c.Seed
	case cfg.Game.Seed != 0:
		return cfg.Game.Seed
	default:
		_, seed := randutil.NewFromTime()
		return seed
	}
}

// play runs rounds one after another, each on a freshly shuffled deck
func play(term *console.Terminal, cfg *config.Config, seed int64, rounds int, logger *log.Logger) error {
	logger.Info("Starting session", "rounds", rounds, "seed", seed)
	rng := randutil.New(seed)

	term.Banner(" ♠ ♥ Blackjack ♦ ♣ ")

	wagered, returned := 0, 0.0
	for i := 1; i <= rounds; i++ {
		round := game.NewRound(term,
			game.WithRNG(rng),
			game.WithLogger(logger),
			game.WithMaxHands(cfg.Game.MaxHands))

		result, err := round.Play()
		if err != nil {
			return fmt.Errorf("round %d (%s): %w", i, round.ID(), err)
		}

		wagered += result.Wagered()
		returned += result.Returned()
		term.Summary(i, wagered, returned)
	}
	return nil
}
