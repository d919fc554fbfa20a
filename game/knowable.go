package game

import (
	"fmt"

	"lukechampine.com/uint128"
)

// KnowableState is the projection of a GameState onto what the current
// player can see: the public history plus their own hand. Whatever can be
// inferred about the hidden hands lives in the void table and the
// unplayed-card set.
type KnowableState struct {
	HeartsState
	hand CardSet
}

func NewKnowableState(gs *GameState) KnowableState {
	return KnowableState{
		HeartsState: gs.HeartsState,
		hand:        gs.CurrentPlayersHand(),
	}
}

func (ks *KnowableState) CurrentPlayersHand() CardSet { return ks.hand }

func (ks *KnowableState) LegalPlays() CardSet {
	return ks.legalPlaysFrom(ks.hand)
}

// PrepareHands seats the known hand; the analyzer fills the other three.
func (ks *KnowableState) PrepareHands() Hands {
	var hands Hands
	hands[ks.CurrentPlayer()] = ks.hand
	return hands
}

func (ks *KnowableState) MightTakeTrick(card Card) bool {
	return ks.MightCardTakeTrick(card, ks.hand)
}

// AttributedPlay is one observed play with its seat, as the application
// boundary reports it.
type AttributedPlay struct {
	Player int
	Card   Card
}

// ReplayKnowableState rebuilds the knowable state for seat from the full
// attributed history of the deal so far. Malformed histories are input
// errors, returned rather than trapped.
func ReplayKnowableState(dealIndex uint128.Uint128, seat int, myHand CardSet, plays []AttributedPlay) (KnowableState, error) {
	if seat < 0 || seat >= NumPlayers {
		return KnowableState{}, fmt.Errorf("no such seat: %d", seat)
	}

	hs := NewHeartsState(dealIndex)
	if len(plays) == 0 {
		hs.setLead(seat)
	} else {
		hs.setLead(plays[0].Player)
	}

	for i, play := range plays {
		if play.Player != hs.CurrentPlayer() {
			return KnowableState{}, fmt.Errorf("play %d out of turn: player %d, expected %d",
				i, play.Player, hs.CurrentPlayer())
		}
		if !hs.unplayedCards.Has(play.Card) {
			return KnowableState{}, fmt.Errorf("play %d: %s was already played", i, play.Card)
		}
		if myHand.Has(play.Card) {
			return KnowableState{}, fmt.Errorf("play %d: %s is still in the hand", i, play.Card)
		}
		hs.applyPlay(play.Card)
	}

	if hs.CurrentPlayer() != seat {
		return KnowableState{}, fmt.Errorf("history ends on player %d's turn, not seat %d",
			hs.CurrentPlayer(), seat)
	}
	ks := KnowableState{HeartsState: hs, hand: myHand}
	if err := ks.checkHand(); err != nil {
		return KnowableState{}, err
	}
	return ks, nil
}

func (ks *KnowableState) checkHand() error {
	if !ks.hand.Subtract(ks.unplayedCards).IsEmpty() {
		return fmt.Errorf("hand holds already-played cards: %s", ks.hand.Subtract(ks.unplayedCards))
	}
	if got, want := ks.hand.Size(), ks.ExpectedHandSize(ks.CurrentPlayer()); got != want {
		return fmt.Errorf("hand has %d cards, history says %d", got, want)
	}
	return nil
}
