package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
)

func testConfig(t *testing.T) Config {
	return Config{
		Rounds:  500,
		Workers: 4,
		Hands:   2,
		Bet:     10,
		Player:  bot.KindMimic,
		Seed:    12345,
		Logger:  log.New(io.Discard),
		Clock:   quartz.NewMock(t),
	}
}

func TestNew(t *testing.T) {
	sim := New(Config{Rounds: 2, Workers: 8})
	require.NotNil(t, sim)
	assert.Equal(t, 2, sim.config.Workers, "workers are capped at the round count")
	assert.Equal(t, game.DefaultMaxHands, sim.config.MaxHands)
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)

	sim = New(Config{Rounds: 10})
	assert.Equal(t, 1, sim.config.Workers)
}

func TestRunMimic(t *testing.T) {
	cfg := testConfig(t)
	mock := cfg.Clock.(*quartz.Mock)

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Rounds, report.Rounds+report.Aborted)
	assert.GreaterOrEqual(t, report.Stats.Hands, report.Rounds*cfg.Hands)
	assert.NoError(t, report.Stats.Validate())
	assert.Zero(t, report.Stats.Doubles, "mimic never doubles")
	assert.Zero(t, report.Stats.Splits, "mimic never splits")
	assert.Equal(t, report.Stats.Hands*cfg.Bet, report.Stats.Wagered)

	assert.Equal(t, mock.Now(), report.Started)
	assert.Zero(t, report.Elapsed, "mock clock never moved")
	assert.Zero(t, report.RoundsPerSecond())
}

func TestRunRandomExercisesDoublesAndSplits(t *testing.T) {
	cfg := testConfig(t)
	cfg.Player = bot.KindRandom
	cfg.Hands = 4
	cfg.Rounds = 1000

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	stats := report.Stats
	assert.NoError(t, stats.Validate())
	assert.Positive(t, stats.Doubles)
	assert.Positive(t, stats.Splits)
	assert.Positive(t, stats.Blackjacks)
	assert.Positive(t, stats.Busts)
	assert.Greater(t, stats.Hands, report.Rounds*cfg.Hands, "splits add hands")
}

func TestRunIsReproducibleAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) *Report {
		cfg := testConfig(t)
		cfg.Player = bot.KindRandom
		cfg.Workers = workers
		report, err := New(cfg).Run(context.Background())
		require.NoError(t, err)
		return report
	}

	one, many := run(1), run(6)
	assert.Equal(t, one.Rounds, many.Rounds)
	assert.Equal(t, one.Aborted, many.Aborted)
	assert.Equal(t, one.Stats.Hands, many.Stats.Hands)
	assert.Equal(t, one.Stats.Wagered, many.Stats.Wagered)
	assert.InDelta(t, one.Stats.Returned, many.Stats.Returned, 1e-6)
	assert.Equal(t, one.Stats.Wins, many.Stats.Wins)
	assert.Equal(t, one.Stats.Busts, many.Stats.Busts)
	assert.Equal(t, one.Stats.Blackjacks, many.Stats.Blackjacks)
	assert.InDelta(t, one.Stats.Median(), many.Stats.Median(), 1e-9)
}

func TestRunRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rounds", func(c *Config) { c.Rounds = 0 }},
		{"no hands", func(c *Config) { c.Hands = 0 }},
		{"too many hands", func(c *Config) { c.Hands = game.DefaultMaxHands + 1 }},
		{"zero bet", func(c *Config) { c.Bet = 0 }},
		{"unknown player", func(c *Config) { c.Player = "counter" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t)
	cfg.Rounds = 5000
	_, err := New(cfg).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckRound(t *testing.T) {
	p, err := bot.New(bot.KindMimic, 1, 10, nil, nil)
	require.NoError(t, err)

	ok := &game.Result{
		Settlements: []game.Settlement{{Hand: 1}, {Hand: 2}},
		Actions:     []game.ActionRecord{{Hand: 1, Action: game.Split}},
	}
	assert.NoError(t, checkRound(1, p, ok))

	missing := &game.Result{
		Settlements: []game.Settlement{{Hand: 1}},
		Actions:     []game.ActionRecord{{Hand: 1, Action: game.Split}},
	}
	assert.ErrorContains(t, checkRound(1, p, missing), "1 settlements for 2 hands")

	twice := &game.Result{Settlements: []game.Settlement{{Hand: 1}, {Hand: 1}}}
	assert.ErrorContains(t, checkRound(2, p, twice), "settled twice")

	p.DisplayError(game.ErrInvalidInput)
	assert.ErrorContains(t, checkRound(2, p, &game.Result{}), "rejected")
}

func TestPrintSummary(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rounds = 50
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	PrintSummary(&out, report)

	text := out.String()
	assert.Contains(t, text, "FINAL RESULTS: mimic player, 2 hand(s) per round")
	assert.Contains(t, text, "Rounds played: ")
	assert.Contains(t, text, "=== OUTCOMES ===")
	assert.Contains(t, text, "Return rate: ")
	assert.NotContains(t, text, "rounds/sec", "no throughput without elapsed time")
}

func TestWriteStats(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rounds = 20
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, report.WriteStats(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, report.Summary(), got)
	assert.Equal(t, "mimic", got.Player)
	assert.Equal(t, 20, got.Rounds+got.Aborted)
	assert.Equal(t, report.Stats.Hands, got.Hands)
}
