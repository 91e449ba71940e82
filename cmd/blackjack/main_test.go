package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
)

func TestPlaySession(t *testing.T) {
	// Always stand; extra answers are never read.
	input := "1\n10\n" + strings.Repeat("s\n", 10) + "1\n10\n" + strings.Repeat("s\n", 10)
	var out bytes.Buffer
	term := console.New(strings.NewReader(input), &out, console.WithColor(console.ColorNever))

	err := play(term, config.Default(), 7, 1, log.New(io.Discard))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Blackjack")
	assert.Contains(t, out.String(), "After 1 round(s)")
}

func TestPlayEndOfInputFails(t *testing.T) {
	var out bytes.Buffer
	term := console.New(strings.NewReader(""), &out, console.WithColor(console.ColorNever))

	err := play(term, config.Default(), 7, 1, log.New(io.Discard))
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "round 1")
}

func TestPlaySeedPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 99

	flag := int64(5)
	assert.Equal(t, int64(5), (&PlayCmd{Seed: &flag}).seed(cfg))
	assert.Equal(t, int64(99), (&PlayCmd{}).seed(cfg))

	cfg.Game.Seed = 0
	assert.NotZero(t, (&PlayCmd{}).seed(cfg))
}

func TestSimulateFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	seed := int64(11)
	cmd := &SimulateCmd{Rounds: 20, Player: "random", Hands: 2, Seed: &seed, Stats: "out.json"}
	cmd.apply(cfg)

	assert.Equal(t, 20, cfg.Simulation.Rounds)
	assert.Equal(t, "random", cfg.Simulation.Player)
	assert.Equal(t, 2, cfg.Simulation.Hands)
	assert.Equal(t, config.Default().Simulation.Workers, cfg.Simulation.Workers)
	assert.Equal(t, config.Default().Simulation.Bet, cfg.Simulation.Bet)
	assert.Equal(t, int64(11), cfg.Game.Seed)
	assert.Equal(t, "out.json", cfg.Simulation.StatsFile)
}

func TestGlobalsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte("log {\n  level = \"warn\"\n}\n"), 0o644))

	cfg, err := (&Globals{Config: path}).load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	cfg, err = (&Globals{Config: path, LogLevel: "debug"}).load()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestSetupLoggerWritesFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "blackjack.log")

	logger, closeLog, err := setupLogger(cfg, io.Discard)
	require.NoError(t, err)
	logger.Info("Hello", "round", "abc")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello")
	assert.Contains(t, string(data), "round=abc")
}
