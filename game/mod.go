package game

import "hearts/random"

// Strategy is the capability a play-picking policy must provide. The
// Monte Carlo searcher, the uniform-random baseline, the neural
// intuition and the terminal human player all satisfy it.
//
// ChoosePlay must return a card from state.LegalPlays(). Implementations
// used with the parallel searcher must be safe for concurrent calls.
type Strategy interface {
	ChoosePlay(state *KnowableState, rng *random.Generator) Card
}
