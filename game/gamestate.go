package game

import (
	"fmt"

	"hearts/random"
	"lukechampine.com/uint128"
)

// GameState is a HeartsState plus all four hands: the omniscient view.
// It is a plain value; cloning one per legal-play trial is a struct copy.
type GameState struct {
	HeartsState
	hands Hands
}

// NewGameState deals the hands for dealIndex and seats the holder of the
// two of clubs as the opening leader.
func NewGameState(dealIndex uint128.Uint128) GameState {
	return GameStateFromHands(dealIndex, DealHands(dealIndex))
}

// GameStateFromHands starts a deal from explicit hands. The hands must
// partition the deck.
func GameStateFromHands(dealIndex uint128.Uint128, hands Hands) GameState {
	gs := GameState{
		HeartsState: NewHeartsState(dealIndex),
		hands:       hands,
	}
	for p := 0; p < NumPlayers; p++ {
		if hands[p].Has(TwoOfClubs) {
			gs.setLead(p)
		}
	}
	gs.Verify()
	return gs
}

// GameStateFromKnowable combines a player's knowable state with one
// actualized assignment of the hidden hands.
func GameStateFromKnowable(ks *KnowableState, hands Hands) GameState {
	return GameState{
		HeartsState: ks.HeartsState,
		hands:       hands,
	}
}

func (gs *GameState) HandOf(player int) CardSet { return gs.hands[player] }

func (gs *GameState) CurrentPlayersHand() CardSet { return gs.hands[gs.CurrentPlayer()] }

func (gs *GameState) LegalPlays() CardSet {
	return gs.legalPlaysFrom(gs.CurrentPlayersHand())
}

// PlayCard plays card for the current player, resolving the trick when it
// is the fourth card.
func (gs *GameState) PlayCard(card Card) {
	player := gs.CurrentPlayer()
	gs.hands[player].Remove(card)
	gs.applyPlay(card)
}

// PlayOutGame simulates the rest of the deal, every seat choosing with
// the given policy, and returns the terminal outcome.
func (gs *GameState) PlayOutGame(intuition Strategy, rng *random.Generator) GameOutcome {
	for !gs.Done() {
		ks := NewKnowableState(gs)
		gs.PlayCard(intuition.ChoosePlay(&ks, rng))
	}
	return gs.CheckForShootTheMoon()
}

// Verify traps unless the four hands are pairwise disjoint, partition the
// unplayed cards, and have the sizes the play history dictates.
func (gs *GameState) Verify() {
	gs.VerifyHeartsState()

	var union CardSet
	total := 0
	for p := 0; p < NumPlayers; p++ {
		union = union.Union(gs.hands[p])
		total += gs.hands[p].Size()
		if got, want := gs.hands[p].Size(), gs.ExpectedHandSize(p); got != want {
			panic(fmt.Sprintf("player %d holds %d cards, history says %d", p, got, want))
		}
	}
	if total != union.Size() {
		panic("hands overlap")
	}
	if union != gs.unplayedCards {
		panic("hands do not partition the unplayed cards")
	}
}
