package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hearts/random"
	"lukechampine.com/uint128"
)

func TestNewKnowableState(t *testing.T) {
	gs := GameStateFromHands(uint128.Zero, suitPerPlayer())
	gs.PlayCard(cardOf(t, "2C"))

	ks := NewKnowableState(&gs)
	require.Equal(t, 1, ks.CurrentPlayer())
	require.Equal(t, gs.HandOf(1), ks.CurrentPlayersHand())
	require.Equal(t, gs.UnplayedCards(), ks.UnplayedCards())
	require.Equal(t, gs.LegalPlays(), ks.LegalPlays())
}

func TestPrepareHands(t *testing.T) {
	gs := GameStateFromHands(uint128.Zero, suitPerPlayer())
	ks := NewKnowableState(&gs)

	hands := ks.PrepareHands()
	require.Equal(t, ks.CurrentPlayersHand(), hands[0])
	for p := 1; p < NumPlayers; p++ {
		require.True(t, hands[p].IsEmpty(), "hidden seats start empty")
	}
}

func TestReplayKnowableState(t *testing.T) {
	// Play a few tricks of a real deal and check the replayed projection
	// matches the live one at every decision of seat 2.
	rng := random.NewGenerator(23)
	dealIndex := rng.Range128(TotalDeals[0])
	gs := NewGameState(dealIndex)

	var history []AttributedPlay
	for gs.PlayNumber() < 20 {
		player := gs.CurrentPlayer()
		if player == 2 {
			replayed, err := ReplayKnowableState(dealIndex, 2, gs.HandOf(2), history)
			require.NoError(t, err)

			live := NewKnowableState(&gs)
			assert.Equal(t, live.CurrentPlayersHand(), replayed.CurrentPlayersHand())
			assert.Equal(t, live.UnplayedCards(), replayed.UnplayedCards())
			assert.Equal(t, live.Voids(), replayed.Voids())
			assert.Equal(t, live.PointsPlayed(), replayed.PointsPlayed())
			assert.Equal(t, live.LegalPlays(), replayed.LegalPlays())
		}

		legal := gs.LegalPlays()
		card := legal.NthCard(rng.Intn(legal.Size()))
		history = append(history, AttributedPlay{Player: player, Card: card})
		gs.PlayCard(card)
	}
}

func TestReplayKnowableStateErrors(t *testing.T) {
	gs := GameStateFromHands(uint128.Zero, suitPerPlayer())
	myHand := gs.HandOf(0)

	t.Run("bad seat", func(t *testing.T) {
		_, err := ReplayKnowableState(uint128.Zero, 4, myHand, nil)
		require.Error(t, err)
	})

	t.Run("out of turn play", func(t *testing.T) {
		history := []AttributedPlay{
			{Player: 0, Card: cardOf(t, "2C")},
			{Player: 3, Card: cardOf(t, "2D")},
		}
		_, err := ReplayKnowableState(uint128.Zero, 2, gs.HandOf(2), history)
		require.ErrorContains(t, err, "out of turn")
	})

	t.Run("card played twice", func(t *testing.T) {
		history := []AttributedPlay{
			{Player: 0, Card: cardOf(t, "2C")},
			{Player: 1, Card: cardOf(t, "2C")},
		}
		_, err := ReplayKnowableState(uint128.Zero, 2, gs.HandOf(2), history)
		require.ErrorContains(t, err, "already played")
	})

	t.Run("played card still in hand", func(t *testing.T) {
		history := []AttributedPlay{
			{Player: 0, Card: cardOf(t, "2C")},
			{Player: 1, Card: cardOf(t, "2D")},
		}
		hand := gs.HandOf(2).Union(handOf(t, "2D"))
		hand.Remove(cardOf(t, "2S"))
		_, err := ReplayKnowableState(uint128.Zero, 2, hand, history)
		require.ErrorContains(t, err, "still in the hand")
	})

	t.Run("history ends on another seat", func(t *testing.T) {
		history := []AttributedPlay{{Player: 0, Card: cardOf(t, "2C")}}
		_, err := ReplayKnowableState(uint128.Zero, 3, gs.HandOf(3), history)
		require.ErrorContains(t, err, "turn")
	})

	t.Run("wrong hand size", func(t *testing.T) {
		history := []AttributedPlay{{Player: 0, Card: cardOf(t, "2C")}}
		short := gs.HandOf(1)
		short.Remove(short.FirstCard())
		_, err := ReplayKnowableState(uint128.Zero, 1, short, history)
		require.ErrorContains(t, err, "hand has")
	})
}

func TestMightTakeTrick(t *testing.T) {
	gs := GameStateFromHands(uint128.Zero, suitPerPlayer())
	gs.PlayCard(cardOf(t, "2C"))
	gs.PlayCard(cardOf(t, "2D"))

	ks := NewKnowableState(&gs) // seat 2 holds every spade
	assert.False(t, ks.MightTakeTrick(cardOf(t, "2S")), "an off suit card cannot win")
}
