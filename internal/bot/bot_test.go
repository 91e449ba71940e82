package bot

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

func TestNew(t *testing.T) {
	rng := randutil.New(1)

	p, err := New(KindMimic, 2, 10, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &DealerMimic{}, p)

	p, err = New(KindRandom, 1, 5, rng, nil)
	require.NoError(t, err)
	assert.IsType(t, &RandomPlayer{}, p)

	n, err := p.RequestHandCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	bet, err := p.RequestBet(1)
	require.NoError(t, err)
	assert.Equal(t, 5, bet)

	for _, tt := range []struct {
		name  string
		kind  Kind
		hands int
		bet   int
		rng   bool
	}{
		{"unknown kind", "counter", 1, 10, true},
		{"no hands", KindMimic, 0, 10, true},
		{"zero bet", KindMimic, 1, 0, true},
		{"random without rng", KindRandom, 1, 10, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := rng
			if !tt.rng {
				r = nil
			}
			_, err := New(tt.kind, tt.hands, tt.bet, r, nil)
			assert.Error(t, err)
		})
	}
}

func TestDealerMimicDecisions(t *testing.T) {
	m, err := New(KindMimic, 1, 10, nil, nil)
	require.NoError(t, err)

	tests := []struct {
		cards string
		value int
		want  game.Action
	}{
		{"Ts6h", 16, game.Hit},
		{"As6h", 17, game.Stand},
		{"9s2h", 11, game.Hit},
		{"TsKh", 20, game.Stand},
	}
	for _, tt := range tests {
		m.DisplayState(game.TableView{
			Hands:  []game.HandView{{ID: 1, Cards: deck.MustParseCards(tt.cards), Value: tt.value, Bet: 10}},
			Active: 1,
		})
		got, err := m.RequestDecision(1, []game.Action{game.Hit, game.Stand, game.Double, game.Split})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.cards)
	}
}

func TestDealerMimicStandsWithoutView(t *testing.T) {
	m, err := New(KindMimic, 1, 10, nil, nil)
	require.NoError(t, err)

	got, err := m.RequestDecision(3, []game.Action{game.Hit, game.Stand})
	require.NoError(t, err)
	assert.Equal(t, game.Stand, got)
}

func TestRandomPlayerPicksOffered(t *testing.T) {
	p, err := New(KindRandom, 1, 10, randutil.New(3), nil)
	require.NoError(t, err)

	offered := []game.Action{game.Hit, game.Stand, game.Double}
	seen := make(map[game.Action]int)
	for range 300 {
		a, err := p.RequestDecision(1, offered)
		require.NoError(t, err)
		assert.True(t, slices.Contains(offered, a))
		seen[a]++
	}
	assert.Len(t, seen, 3, "every offered action should come up")
	assert.Zero(t, seen[game.Split])
}

func TestBotsPlayRounds(t *testing.T) {
	rng := randutil.New(42)

	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			p, err := New(kind, 3, 10, rng, nil)
			require.NoError(t, err)

			for range 200 {
				result, err := game.NewRound(p, game.WithRNG(rng)).Play()
				if errors.Is(err, deck.ErrDeckExhausted) {
					continue
				}
				require.NoError(t, err)
				assert.GreaterOrEqual(t, len(result.Settlements), 3)
			}
			assert.Zero(t, p.Rejected(), "bots only give answers the round accepts")
		})
	}
}

func TestDealerMimicNeverDoublesOrSplits(t *testing.T) {
	p, err := New(KindMimic, 2, 10, nil, nil)
	require.NoError(t, err)
	rng := randutil.New(9)

	for range 200 {
		result, err := game.NewRound(p, game.WithRNG(rng)).Play()
		require.NoError(t, err)
		for _, a := range result.Actions {
			assert.Contains(t, []game.Action{game.Hit, game.Stand}, a.Action)
		}
		for _, st := range result.Settlements {
			assert.Equal(t, 10, st.Bet)
			if st.Outcome != game.OutcomeBlackjack && st.PlayerValue <= 21 {
				assert.GreaterOrEqual(t, st.PlayerValue, 17)
			}
		}
	}
}
