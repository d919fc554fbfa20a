package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hearts/game"
	"hearts/random"
	"hearts/searcher"
)

func TestLocalEngineRunsADeal(t *testing.T) {
	rng := random.NewGenerator(1)
	strategies := [game.NumPlayers]game.Strategy{
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
	}

	e := LocalEngine(rng.Range128(game.TotalDeals[0]), strategies, rng)
	outcome, dealMetric, moves := e.Run()

	require.True(t, e.State.Done())
	require.Len(t, moves, game.CardsPerDeck)

	points := 0
	sum := 0.0
	for p := 0; p < game.NumPlayers; p++ {
		points += outcome.PointsFor(p)
		sum += outcome.StandardScore(p)
		require.Equal(t, outcome.PointsFor(p), dealMetric.Scores[p])
	}
	require.Equal(t, game.TotalPoints, points)
	require.Zero(t, sum)

	assert.NotEmpty(t, dealMetric.Deal)
	assert.Positive(t, dealMetric.Duration)

	for i, m := range moves {
		assert.Equal(t, i, m.Play)
		_, err := game.ParseCard(m.Card)
		assert.NoError(t, err)
	}
}

func TestLocalEngineWithSearcher(t *testing.T) {
	rng := random.NewGenerator(2)
	mc := searcher.NewMonteCarlo(searcher.RandomStrategy{},
		searcher.WithMinAlternates(2),
		searcher.WithMaxAlternates(2),
		searcher.WithTimeBudget(0))
	strategies := [game.NumPlayers]game.Strategy{
		mc,
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
	}

	e := LocalEngine(rng.Range128(game.TotalDeals[0]), strategies, rng)
	outcome, _, _ := e.Run()

	points := 0
	for p := 0; p < game.NumPlayers; p++ {
		points += outcome.PointsFor(p)
	}
	require.Equal(t, game.TotalPoints, points)
}

func TestLocalEngineRejectsNilStrategy(t *testing.T) {
	rng := random.NewGenerator(3)
	var strategies [game.NumPlayers]game.Strategy
	assert.Panics(t, func() { LocalEngine(rng.Range128(game.TotalDeals[0]), strategies, rng) })
}
