package neural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hearts/game"
	"hearts/random"
	"hearts/searcher"
)

func encodeScenario(t *testing.T, seed uint64, plays int) (game.KnowableState, []float32) {
	t.Helper()
	rng := random.NewGenerator(seed)
	gs := game.NewGameState(rng.Range128(game.TotalDeals[0]))
	for gs.PlayNumber() < plays {
		legal := gs.LegalPlays()
		gs.PlayCard(legal.NthCard(rng.Intn(legal.Size())))
	}
	ks := game.NewKnowableState(&gs)
	analyzer := searcher.NewPossibilityAnalyzer(&ks)
	return ks, EncodeDecision(&ks, analyzer)
}

func TestEncodeDecisionShape(t *testing.T) {
	for _, plays := range []int{0, 7, 22, 41} {
		_, data := encodeScenario(t, 3, plays)
		require.Len(t, data, TotalScalarFeatures)
		for i, v := range data {
			require.False(t, v < -1 || v > 1, "feature %d out of range: %f", i, v)
		}
	}
}

func TestEncodeDecisionCardColumns(t *testing.T) {
	ks, data := encodeScenario(t, 5, 13)
	legal := ks.LegalPlays()

	for c := game.Card(0); c < game.CardsPerDeck; c++ {
		row := data[int(c)*InputFeatures : (int(c)+1)*InputFeatures]

		// Seat ownership probabilities: own cards sit in column zero.
		if ks.CurrentPlayersHand().Has(c) {
			assert.Equal(t, float32(1), row[0], "own card %s", c)
		}
		if !ks.UnplayedCards().Has(c) {
			for seat := 0; seat < game.NumPlayers; seat++ {
				assert.Zero(t, row[seat], "played card %s", c)
			}
		}

		assert.Equal(t, flag(legal.Has(c)), row[game.NumPlayers], "legal flag for %s", c)
		assert.Equal(t, float32(game.PointsFor(c))/13, row[InputFeatures-1], "point value for %s", c)
	}
}

func TestEncodeDecisionScalarBlocks(t *testing.T) {
	ks, data := encodeScenario(t, 9, 18)

	block := data[game.CardsPerDeck*InputFeatures:]
	require.Len(t, block, PointsSoFarLen+ExtraFeatures)

	// Play-in-trick one-hot.
	onehot := 0
	for i := 0; i < game.NumPlayers; i++ {
		if block[i] == 1 {
			onehot++
			assert.Equal(t, ks.PlayInTrick(), i)
		}
	}
	require.Equal(t, 1, onehot)

	assert.Equal(t, float32(ks.PointsPlayed())/game.TotalPoints, block[game.NumPlayers])
}

func TestStrategyFallback(t *testing.T) {
	s := NewStrategyOrFallback("testdata/does-not-exist.onnx")
	require.IsType(t, searcher.RandomStrategy{}, s)

	_, err := NewStrategy("testdata/does-not-exist.onnx")
	require.Error(t, err)
}
