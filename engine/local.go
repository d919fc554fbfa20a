package engine

import (
	"hearts/experiments/metrics"
	"hearts/game"
	"hearts/random"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/uint128"
)

// Engine drives one deal: it builds each seat's knowable state, asks that
// seat's strategy for a card, and applies it until the deal completes.
type Engine struct {
	State      game.GameState
	Strategies [game.NumPlayers]game.Strategy
	rng        *random.Generator
}

func LocalEngine(dealIndex uint128.Uint128, strategies [game.NumPlayers]game.Strategy, rng *random.Generator) *Engine {
	for _, s := range strategies {
		if s == nil {
			panic("every seat needs a strategy")
		}
	}
	return &Engine{
		State:      game.NewGameState(dealIndex),
		Strategies: strategies,
		rng:        rng,
	}
}

// Run executes the deal to its terminal state.
func (e *Engine) Run() (game.GameOutcome, metrics.DealMetric, []metrics.MoveMetric) {
	deal := game.HexString(e.State.DealIndex(), 24)
	log.Debug().Str("deal", deal).Int("lead", e.State.PlayerLeadingTrick()).Msg("deal started")

	start := time.Now()
	moves := make([]metrics.MoveMetric, 0, game.CardsPerDeck)
	for !e.State.Done() {
		player := e.State.CurrentPlayer()
		knowable := game.NewKnowableState(&e.State)

		moveStart := time.Now()
		card := e.Strategies[player].ChoosePlay(&knowable, e.rng)
		moves = append(moves, metrics.MoveMetric{
			Play:     e.State.PlayNumber(),
			Player:   player,
			Card:     card.String(),
			Duration: time.Since(moveStart),
		})

		e.State.PlayCard(card)

		if e.State.PlayInTrick() == 0 {
			log.Debug().Str("deal", deal).
				Int("trick", e.State.PlayNumber()/game.NumPlayers).
				Int("winner", e.State.PlayerLeadingTrick()).
				Int("pointsPlayed", e.State.PointsPlayed()).
				Msg("trick complete")
		}
	}

	outcome := e.State.CheckForShootTheMoon()
	dealMetric := metrics.DealMetric{
		Deal:           deal,
		ShotTheMoon:    outcome.ShotTheMoon(),
		StoppedTheMoon: outcome.StoppedTheMoon(),
		Shooter:        outcome.Shooter(),
		StartTime:      start,
		Duration:       time.Since(start),
	}
	for p := 0; p < game.NumPlayers; p++ {
		dealMetric.Scores[p] = outcome.PointsFor(p)
	}

	log.Info().Str("deal", deal).
		Ints("scores", dealMetric.Scores[:]).
		Bool("moon", outcome.ShotTheMoon()).
		Msg("deal over")
	return outcome, dealMetric, moves
}
