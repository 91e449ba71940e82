package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the outcome of a single settled hand
type HandResult struct {
	Seed    int64 // RNG seed of the round (for replay)
	Bet     int   // bet at settlement, after doubling
	Payout  float64
	Outcome game.Outcome
	Doubled bool
	Split   bool
}

// FromSettlement converts a settled hand into a HandResult
func FromSettlement(seed int64, s game.Settlement) HandResult {
	return HandResult{
		Seed:    seed,
		Bet:     s.Bet,
		Payout:  s.Payout,
		Outcome: s.Outcome,
		Doubled: s.Doubled,
		Split:   s.Split,
	}
}

// Net returns what the hand won or lost
func (r HandResult) Net() float64 {
	return r.Payout - float64(r.Bet)
}

// Statistics tracks per-hand results across many rounds
type Statistics struct {
	Hands   int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	// Outcome counts; every hand lands in exactly one
	Wins       int // includes dealer busts
	DealerBust int // subset of Wins
	Blackjacks int
	Pushes     int
	Losses     int
	Busts      int

	Doubles int
	Splits  int

	Wagered  int
	Returned float64
}

// Mean returns the mean net result per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnRate is the amount returned per unit wagered (1.0 is break-even)
func (s *Statistics) ReturnRate() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.Returned / float64(s.Wagered)
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := result.Net()
	s.Hands++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.Wagered += result.Bet
	s.Returned += result.Payout

	switch result.Outcome {
	case game.OutcomeBlackjack:
		s.Blackjacks++
	case game.OutcomeWin:
		s.Wins++
	case game.OutcomeDealerBust:
		s.Wins++
		s.DealerBust++
	case game.OutcomePush:
		s.Pushes++
	case game.OutcomeBust:
		s.Busts++
	default:
		s.Losses++
	}

	if result.Doubled {
		s.Doubles++
	}
	if result.Split {
		s.Splits++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.Wins += other.Wins
	s.DealerBust += other.DealerBust
	s.Blackjacks += other.Blackjacks
	s.Pushes += other.Pushes
	s.Losses += other.Losses
	s.Busts += other.Busts
	s.Doubles += other.Doubles
	s.Splits += other.Splits

	s.Wagered += other.Wagered
	s.Returned += other.Returned
}

// Rate returns count as a fraction of hands
func (s *Statistics) Rate(count int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(count) / float64(s.Hands)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that the summed net equals returned minus wagered
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-(s.Returned-float64(s.Wagered))) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: net=%.6f, returned=%.6f, wagered=%d",
			s.SumNet, s.Returned, s.Wagered)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	outcomes := s.Wins + s.Blackjacks + s.Pushes + s.Losses + s.Busts
	if outcomes != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands count (%d)", outcomes, s.Hands)
	}

	if s.DealerBust > s.Wins {
		return fmt.Errorf("dealer busts (%d) exceed wins (%d)", s.DealerBust, s.Wins)
	}

	if s.Doubles > s.Hands || s.Splits > s.Hands {
		return fmt.Errorf("doubles (%d) or splits (%d) exceed hands (%d)", s.Doubles, s.Splits, s.Hands)
	}

	return nil
}
