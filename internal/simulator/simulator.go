package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Workers  int
	Hands    int // hands per round
	Bet      int // bet per hand
	Player   bot.Kind
	Seed     int64
	MaxHands int
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Report is the outcome of a simulation run
type Report struct {
	Stats     *statistics.Statistics
	Player    bot.Kind
	Seed      int64
	Rounds    int // rounds played to settlement
	Aborted   int // rounds stopped by an exhausted deck
	Started   time.Time
	Elapsed   time.Duration
	Workers   int
	HandsEach int
}

// RoundsPerSecond returns throughput, or 0 when no time was measured
func (r *Report) RoundsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Rounds+r.Aborted) / r.Elapsed.Seconds()
}

// Summary is the machine-readable form of a Report
type Summary struct {
	Player      string     `json:"player"`
	Seed        int64      `json:"seed"`
	Rounds      int        `json:"rounds"`
	Aborted     int        `json:"aborted"`
	HandsEach   int        `json:"hands_per_round"`
	Hands       int        `json:"hands"`
	Wins        int        `json:"wins"`
	DealerBusts int        `json:"dealer_busts"`
	Blackjacks  int        `json:"blackjacks"`
	Pushes      int        `json:"pushes"`
	Losses      int        `json:"losses"`
	Busts       int        `json:"busts"`
	Doubles     int        `json:"doubles"`
	Splits      int        `json:"splits"`
	Wagered     int        `json:"wagered"`
	Returned    float64    `json:"returned"`
	Mean        float64    `json:"mean"`
	StdDev      float64    `json:"stddev"`
	CI95        [2]float64 `json:"ci95"`
	ReturnRate  float64    `json:"return_rate"`
	ElapsedMs   int64      `json:"elapsed_ms"`
}

// Summary flattens the report for serialization
func (r *Report) Summary() Summary {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()
	return Summary{
		Player:      string(r.Player),
		Seed:        r.Seed,
		Rounds:      r.Rounds,
		Aborted:     r.Aborted,
		HandsEach:   r.HandsEach,
		Hands:       stats.Hands,
		Wins:        stats.Wins,
		DealerBusts: stats.DealerBust,
		Blackjacks:  stats.Blackjacks,
		Pushes:      stats.Pushes,
		Losses:      stats.Losses,
		Busts:       stats.Busts,
		Doubles:     stats.Doubles,
		Splits:      stats.Splits,
		Wagered:     stats.Wagered,
		Returned:    stats.Returned,
		Mean:        stats.Mean(),
		StdDev:      stats.StdDev(),
		CI95:        [2]float64{low, high},
		ReturnRate:  stats.ReturnRate(),
		ElapsedMs:   r.Elapsed.Milliseconds(),
	}
}

// WriteStats writes the report summary as JSON. The file is replaced
// atomically so a watcher never reads a partial report.
func (r *Report) WriteStats(filename string) error {
	return fileutil.WriteJSON(filename, r.Summary())
}

// Simulator plays many independent rounds with headless bots
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.MaxHands < 1 {
		config.MaxHands = game.DefaultMaxHands
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Workers > config.Rounds && config.Rounds > 0 {
		config.Workers = config.Rounds
	}
	return &Simulator{config: config}
}

func (s *Simulator) validate() error {
	c := s.config
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}
	if c.Hands < 1 || c.Hands > c.MaxHands {
		return fmt.Errorf("hands must be from 1 to %d, got %d", c.MaxHands, c.Hands)
	}
	if c.Bet < 1 {
		return fmt.Errorf("bet must be positive, got %d", c.Bet)
	}
	if _, err := bot.New(c.Player, c.Hands, c.Bet, randutil.New(0), nil); err != nil {
		return err
	}
	return nil
}

// workerResult is what one worker accumulated
type workerResult struct {
	stats   statistics.Statistics
	rounds  int
	aborted int
}

// Run executes the simulation and returns results. Every round gets its
// own deck, bot and RNG seeded from the base seed, so a run is reproducible
// whatever the worker count.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	cfg := s.config
	started := cfg.Clock.Now()
	seeds := randutil.Seeds(cfg.Seed, cfg.Rounds)

	cfg.Logger.Info("Starting simulation",
		"rounds", cfg.Rounds,
		"workers", cfg.Workers,
		"player", cfg.Player,
		"hands", cfg.Hands,
		"seed", cfg.Seed)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	results := make([]workerResult, cfg.Workers)

	g.Go(func() error {
		defer close(jobs)
		for i := range seeds {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := range cfg.Workers {
		res := &results[w]
		g.Go(func() error {
			for i := range jobs {
				aborted, err := s.playRound(i, seeds[i], &res.stats)
				if err != nil {
					return err
				}
				if aborted {
					res.aborted++
				} else {
					res.rounds++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Stats:     &statistics.Statistics{},
		Player:    cfg.Player,
		Seed:      cfg.Seed,
		Started:   started,
		Elapsed:   cfg.Clock.Since(started),
		Workers:   cfg.Workers,
		HandsEach: cfg.Hands,
	}
	for i := range results {
		report.Stats.Merge(&results[i].stats)
		report.Rounds += results[i].rounds
		report.Aborted += results[i].aborted
	}

	// Validate statistics before returning
	if report.Rounds > 0 {
		if err := report.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed: %w", err)
		}
	}

	cfg.Logger.Info("Simulation complete",
		"rounds", report.Rounds,
		"aborted", report.Aborted,
		"hands", report.Stats.Hands,
		"elapsed", report.Elapsed)
	return report, nil
}

// playRound plays one round into stats. It reports aborted rounds rather
// than failing on them; any other failure ends the run.
func (s *Simulator) playRound(index int, seed int64, stats *statistics.Statistics) (bool, error) {
	cfg := s.config
	rng := randutil.New(seed)
	id := fmt.Sprintf("sim-%d", index+1)

	player, err := bot.New(cfg.Player, cfg.Hands, cfg.Bet, rng, cfg.Logger)
	if err != nil {
		return false, err
	}

	round := game.NewRound(player,
		game.WithRNG(rng),
		game.WithID(id),
		game.WithLogger(cfg.Logger),
		game.WithMaxHands(cfg.MaxHands))

	result, err := round.Play()
	if errors.Is(err, deck.ErrDeckExhausted) {
		cfg.Logger.Warn("Round aborted", "round", id, "seed", seed, "phase", round.Phase())
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("round %s (seed %d): %w", id, seed, err)
	}

	if err := checkRound(cfg.Hands, player, result); err != nil {
		return false, fmt.Errorf("round %s (seed %d): %w", id, seed, err)
	}

	for _, st := range result.Settlements {
		stats.Add(statistics.FromSettlement(seed, st))
	}
	return false, nil
}

// checkRound verifies every hand was settled exactly once
func checkRound(hands int, player bot.Player, result *game.Result) error {
	if n := player.Rejected(); n > 0 {
		return fmt.Errorf("%d bot answers rejected", n)
	}

	splits := 0
	for _, a := range result.Actions {
		if a.Action == game.Split {
			splits++
		}
	}
	if want := hands + splits; len(result.Settlements) != want {
		return fmt.Errorf("%d settlements for %d hands", len(result.Settlements), want)
	}

	seen := make(map[int]bool, len(result.Settlements))
	for _, st := range result.Settlements {
		if seen[st.Hand] {
			return fmt.Errorf("hand %d settled twice", st.Hand)
		}
		seen[st.Hand] = true
	}
	return nil
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, r *Report) {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s player, %d hand(s) per round ===\n", r.Player, r.HandsEach)
	fmt.Fprintf(w, "Rounds played: %d (%d aborted on an empty deck)\n", r.Rounds, r.Aborted)
	fmt.Fprintf(w, "Hands settled: %d\n", stats.Hands)
	fmt.Fprintf(w, "Seed: %d, workers: %d, elapsed: %s", r.Seed, r.Workers, r.Elapsed.Round(time.Millisecond))
	if rps := r.RoundsPerSecond(); rps > 0 {
		fmt.Fprintf(w, " (%.0f rounds/sec)", rps)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f per hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f per hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] per hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.2f, P25=%.2f, P75=%.2f, P95=%.2f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	for _, row := range []struct {
		name  string
		count int
	}{
		{"Blackjack", stats.Blackjacks},
		{"Win", stats.Wins},
		{"  dealer bust", stats.DealerBust},
		{"Push", stats.Pushes},
		{"Lose", stats.Losses},
		{"Bust", stats.Busts},
		{"Doubled", stats.Doubles},
		{"Split", stats.Splits},
	} {
		fmt.Fprintf(w, "%-14s %8d (%5.1f%%)\n", row.name, row.count, stats.Rate(row.count)*100)
	}

	fmt.Fprintf(w, "\n=== LEDGER ===\n")
	fmt.Fprintf(w, "Wagered: $%d, returned: $%.2f, net: $%.2f\n",
		stats.Wagered, stats.Returned, stats.Returned-float64(stats.Wagered))
	fmt.Fprintf(w, "Return rate: %.4f\n", stats.ReturnRate())
}
