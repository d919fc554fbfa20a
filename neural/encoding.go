// Package neural wraps an ONNX policy network as a rollout intuition.
// The feature layout mirrors the training pipeline: per-card columns of
// seat ownership probabilities plus play context, followed by a
// points-so-far block and a block of scalar features.
package neural

import (
	"fmt"

	"hearts/game"
	"hearts/searcher"
)

const (
	// Per-card columns: one ownership probability per seat, then the
	// legal-play flag, the high-card flag, and the card's point value.
	InputFeatures = game.NumPlayers + 3

	// One-hot play-in-trick, normalized points played, and a live-shoot
	// flag per seat.
	PointsSoFarLen = game.NumPlayers + 1 + game.NumPlayers

	ExtraFeatures = 33

	TotalScalarFeatures = game.CardsPerDeck*InputFeatures + PointsSoFarLen + ExtraFeatures
)

// EncodeDecision flattens a decision state into the model's input vector.
// Seat-indexed columns are rotated so the current player is seat zero.
func EncodeDecision(state *game.KnowableState, analyzer *searcher.PossibilityAnalyzer) []float32 {
	data := make([]float32, 0, TotalScalarFeatures)

	me := state.CurrentPlayer()
	legal := state.LegalPlays()
	probs := analyzer.ExpectedDistribution(state)

	var highCard game.Card
	onTable := state.PlayInTrick() > 0
	if onTable {
		highCard = state.HighCardOnTable()
	}

	for c := game.Card(0); c < game.CardsPerDeck; c++ {
		for seat := 0; seat < game.NumPlayers; seat++ {
			data = append(data, float32(probs[c][(me+seat)%game.NumPlayers]))
		}
		data = append(data, flag(legal.Has(c)))
		data = append(data, flag(onTable && c == highCard))
		data = append(data, float32(game.PointsFor(c))/13)
	}

	// Points-so-far block.
	for i := 0; i < game.NumPlayers; i++ {
		data = append(data, flag(state.PlayInTrick() == i))
	}
	data = append(data, float32(state.PointsPlayed())/game.TotalPoints)
	for seat := 0; seat < game.NumPlayers; seat++ {
		data = append(data, flag(liveShootThreat(state, (me+seat)%game.NumPlayers)))
	}

	data = appendExtraFeatures(data, state)

	if len(data) != TotalScalarFeatures {
		panic(fmt.Sprintf("encoded %d features, want %d", len(data), TotalScalarFeatures))
	}
	return data
}

// liveShootThreat reports whether player has taken points and nobody else
// has: the only situation a shoot is still building.
func liveShootThreat(state *game.KnowableState, player int) bool {
	if state.GetScoreFor(player) == 0 {
		return false
	}
	return !state.PointsSplit()
}

func appendExtraFeatures(data []float32, state *game.KnowableState) []float32 {
	me := state.CurrentPlayer()
	start := len(data)

	for seat := 0; seat < game.NumPlayers; seat++ {
		data = append(data, float32(state.GetScoreFor((me+seat)%game.NumPlayers))/game.TotalPoints)
	}
	for seat := 0; seat < game.NumPlayers; seat++ {
		data = append(data, float32(state.PointTricksFor((me+seat)%game.NumPlayers))/game.CardsPerHand)
	}
	data = append(data, float32(state.PlayNumber())/game.CardsPerDeck)

	for s := game.Suit(0); s <= game.SuitUnknown; s++ {
		data = append(data, flag(state.TrickSuit() == s))
	}
	for seat := 0; seat < game.NumPlayers; seat++ {
		data = append(data, flag(state.PlayerLeadingTrick() == (me+seat)%game.NumPlayers))
	}

	hand := state.CurrentPlayersHand()
	data = append(data, float32(hand.Size())/game.CardsPerHand)
	data = append(data, flag(state.PointsSplit()))
	data = append(data, flag(state.PointsPlayed() > 0))
	for s := game.Suit(0); s < game.NumSuits; s++ {
		data = append(data, float32(hand.CardsWithSuit(s).Size())/game.CardsPerHand)
	}
	for s := game.Suit(0); s < game.NumSuits; s++ {
		data = append(data, float32(state.UnplayedCards().CardsWithSuit(s).Size())/game.CardsPerHand)
	}
	data = append(data, float32(state.LegalPlays().Size())/game.CardsPerHand)

	if len(data)-start > ExtraFeatures {
		panic(fmt.Sprintf("extra feature block overflows: %d", len(data)-start))
	}
	for len(data)-start < ExtraFeatures {
		data = append(data, 0)
	}
	return data
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
