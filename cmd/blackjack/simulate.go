package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd runs headless rounds. Unset flags fall back to the
// simulation block of the config file.
type SimulateCmd struct {
	Rounds  int    `short:"n" help:"Number of rounds to simulate"`
	Workers int    `short:"w" help:"Number of rounds played concurrently"`
	Player  string `short:"p" help:"Bot to play with: mimic or random"`
	Hands   int    `help:"Hands played per round"`
	Bet     int    `help:"Bet per hand"`
	Seed    *int64 `help:"Base RNG seed (overrides the config file)"`
	Stats   string `name:"write-stats" help:"Write a JSON summary of the run to this file"`
}

// apply writes flag overrides into cfg
func (c *SimulateCmd) apply(cfg *config.Config) {
	s := &cfg.Simulation
	if c.Rounds != 0 {
		s.Rounds = c.Rounds
	}
	if c.Workers != 0 {
		s.Workers = c.Workers
	}
	if c.Player != "" {
		s.Player = c.Player
	}
	if c.Hands != 0 {
		s.Hands = c.Hands
	}
	if c.Bet != 0 {
		s.Bet = c.Bet
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.Stats != "" {
		s.StatsFile = c.Stats
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
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

	seed := cfg.Game.Seed
	if seed == 0 {
		_, seed = randutil.NewFromTime()
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Rounds:   cfg.Simulation.Rounds,
		Workers:  cfg.Simulation.Workers,
		Hands:    cfg.Simulation.Hands,
		Bet:      cfg.Simulation.Bet,
		Player:   bot.Kind(cfg.Simulation.Player),
		Seed:     seed,
		MaxHands: cfg.Game.MaxHands,
		Logger:   logger,
		Clock:    quartz.NewReal(),
	})

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, report)

	if path := cfg.Simulation.StatsFile; path != "" {
		if err := report.WriteStats(path); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
		logger.Info("Stats written to file", "file", path)
	}
	return nil
}
