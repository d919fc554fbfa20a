package searcher

import (
	"hearts/game"
	"hearts/random"
)

// RandomStrategy picks uniformly among the legal plays. It is the
// baseline intuition for rollouts and is trivially thread-safe.
type RandomStrategy struct{}

func (RandomStrategy) ChoosePlay(state *game.KnowableState, rng *random.Generator) game.Card {
	choices := state.LegalPlays()
	return choices.NthCard(rng.Intn(choices.Size()))
}
