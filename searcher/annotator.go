package searcher

import "hearts/game"

// Annotator observes one finished decision: the state it was made in, the
// analyzer over its hidden worlds, and the per-legal-play statistics the
// sampling produced. moonProb rows hold the four moon-event frequencies
// plus the no-moon remainder and sum to one.
//
// The searcher itself never logs or writes; implementations decide what
// the observations are for (training-data capture, experiment metrics).
// A nil annotator is simply skipped.
type Annotator interface {
	OnDecision(state *game.KnowableState, analyzer *PossibilityAnalyzer,
		expectedScore []float64, moonProb [][NumMoonBuckets + 1]float64, winsTrickProb []float64)
}
