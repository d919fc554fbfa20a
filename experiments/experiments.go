package experiments

import (
	"hearts/engine"
	"hearts/experiments/metrics"
	"hearts/game"
	"hearts/random"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RunMatch plays the configured number of deals with the given seat
// strategies, each deal drawn uniformly from the deal space, and returns
// the per-deal and per-move records.
func RunMatch(config metrics.MatchConfig, strategies [game.NumPlayers]game.Strategy,
	deals int, rng *random.Generator) ([]metrics.GameRecord, []metrics.MoveRecord) {

	games := make([]metrics.GameRecord, 0, deals)
	var moves []metrics.MoveRecord

	for i := 0; i < deals; i++ {
		dealIndex := rng.Range128(game.TotalDeals[0])
		e := engine.LocalEngine(dealIndex, strategies, rng)
		_, dealMetric, moveMetrics := e.Run()

		record := metrics.GameRecord{
			ID:         uuid.NewString(),
			Match:      config.ID,
			DealMetric: dealMetric,
		}
		games = append(games, record)
		for _, m := range moveMetrics {
			moves = append(moves, metrics.MoveRecord{Game: record.ID, MoveMetric: m})
		}

		log.Info().Int("match", config.ID).Int("game", i+1).Int("of", deals).Msg("game over")
	}

	return games, moves
}

// WriteMatch persists one match's records under root.
func WriteMatch(root string, config metrics.MatchConfig,
	games []metrics.GameRecord, moves []metrics.MoveRecord) error {

	writer, err := metrics.NewWriter(root)
	if err != nil {
		return err
	}
	if err := writer.WriteMatchConfigs([]metrics.MatchConfig{config}); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return err
	}
	log.Info().Str("dir", writer.BaseDir()).Msg("match records written")
	return nil
}
