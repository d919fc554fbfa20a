package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hearts/experiments/metrics"
	"hearts/game"
	"hearts/random"
	"hearts/searcher"
)

func randomSeats() [game.NumPlayers]game.Strategy {
	return [game.NumPlayers]game.Strategy{
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
		searcher.RandomStrategy{},
	}
}

func TestRunMatch(t *testing.T) {
	config := metrics.MatchConfig{ID: 1, Seats: [4]string{"random", "random", "random", "random"}}
	rng := random.NewGenerator(13)

	games, moves := RunMatch(config, randomSeats(), 3, rng)

	require.Len(t, games, 3)
	require.Len(t, moves, 3*game.CardsPerDeck)

	ids := map[string]bool{}
	for _, g := range games {
		require.Equal(t, 1, g.Match)
		require.NotEmpty(t, g.ID)
		ids[g.ID] = true

		points := 0
		for _, s := range g.Scores {
			points += s
		}
		require.Equal(t, game.TotalPoints, points)
	}
	require.Len(t, ids, 3, "every game gets its own id")

	for _, m := range moves {
		assert.True(t, ids[m.Game], "moves reference their game")
	}
}

func TestWriteMatch(t *testing.T) {
	dir := t.TempDir()
	config := metrics.MatchConfig{ID: 7, Seats: [4]string{"mc", "random", "random", "random"}}
	rng := random.NewGenerator(29)

	games, moves := RunMatch(config, randomSeats(), 2, rng)
	require.NoError(t, WriteMatch(dir, config, games, moves))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "one timestamped run directory")

	runDir := filepath.Join(dir, entries[0].Name())
	for name, rows := range map[string]int{
		"match_configs.csv": 1,
		"game_records.csv":  2,
		"move_records.csv":  2 * game.CardsPerDeck,
	} {
		f, err := os.Open(filepath.Join(runDir, name))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		require.Len(t, records, rows+1, "%s should hold a header plus %d rows", name, rows)
	}
}
