package searcher

import (
	"fmt"

	"hearts/game"
)

// MaxLegalPlays is the most cards one decision can offer: a full hand.
const MaxLegalPlays = game.CardsPerHand

// Moon buckets per legal play, in order: the current player shot the
// moon, another player shot it, the current player stopped another's
// shoot, another stopped the current player's. The fifth, implicit
// outcome is the common one where nobody came close.
const (
	moonIShot = iota
	moonOtherShot
	moonIStopped
	moonOtherStopped
	NumMoonBuckets
)

// Stats accumulates rollout results per legal play. Each worker owns a
// private Stats during sampling; Merge folds the workers' totals
// together, and is plain element-wise addition, so it is associative.
type Stats struct {
	numLegalPlays   int
	totalAlternates int
	totalScores     [MaxLegalPlays]float64
	totalTrickWins  [MaxLegalPlays]int
	totalMoonCounts [MaxLegalPlays][NumMoonBuckets]int
}

func NewStats(numLegalPlays int) *Stats {
	if numLegalPlays < 1 || numLegalPlays > MaxLegalPlays {
		panic(fmt.Sprintf("bad legal play count: %d", numLegalPlays))
	}
	return &Stats{numLegalPlays: numLegalPlays}
}

func (s *Stats) NumLegalPlays() int { return s.numLegalPlays }

func (s *Stats) TotalAlternates() int { return s.totalAlternates }

func (s *Stats) FinishedOneAlternate() { s.totalAlternates++ }

// TrackTrickWinner arms next's tracker to bump this play's win counter.
func (s *Stats) TrackTrickWinner(next *game.GameState, iPlay int) {
	next.TrackTrickWinner(&s.totalTrickWins[iPlay])
}

func (s *Stats) UntrackTrickWinner(next *game.GameState) {
	next.TrackTrickWinner(nil)
}

// UpdateForGameOutcome folds one finished rollout for legal play iPlay
// into the totals, from currentPlayer's perspective.
func (s *Stats) UpdateForGameOutcome(outcome *game.GameOutcome, currentPlayer, iPlay int) {
	s.totalScores[iPlay] += outcome.StandardScore(currentPlayer)

	if outcome.ShotTheMoon() {
		if outcome.Shooter() == currentPlayer {
			s.totalMoonCounts[iPlay][moonIShot]++
		} else {
			s.totalMoonCounts[iPlay][moonOtherShot]++
		}
	} else if outcome.StoppedTheMoon() {
		switch pt := outcome.PointTricksFor(currentPlayer); {
		case pt == 1:
			s.totalMoonCounts[iPlay][moonIStopped]++
		case pt > 1:
			s.totalMoonCounts[iPlay][moonOtherStopped]++
		}
	}
}

// Merge adds other's totals into s.
func (s *Stats) Merge(other *Stats) {
	if s.numLegalPlays != other.numLegalPlays {
		panic("merging stats over different legal plays")
	}
	s.totalAlternates += other.totalAlternates
	for i := 0; i < s.numLegalPlays; i++ {
		s.totalScores[i] += other.totalScores[i]
		s.totalTrickWins[i] += other.totalTrickWins[i]
		for b := 0; b < NumMoonBuckets; b++ {
			s.totalMoonCounts[i][b] += other.totalMoonCounts[i][b]
		}
	}
}

// BestPlay returns the legal card with the lowest expected score; ties
// keep the earlier card.
func (s *Stats) BestPlay(choices game.CardSet) game.Card {
	if choices.Size() != s.numLegalPlays {
		panic("choices do not match stats")
	}
	if s.totalAlternates == 0 {
		panic("no alternates sampled")
	}
	best := 0
	for i := 1; i < s.numLegalPlays; i++ {
		if s.totalScores[i] < s.totalScores[best] {
			best = i
		}
	}
	return choices.NthCard(best)
}

// Targets computes the per-play annotation values: expected score, the
// five moon-event frequencies (the four buckets plus "no moon"), and the
// probability of winning the present trick. Each moon row sums to one.
func (s *Stats) Targets() (expectedScore []float64, moonProb [][NumMoonBuckets + 1]float64, winsTrickProb []float64) {
	if s.totalAlternates == 0 {
		panic("no alternates sampled")
	}
	scale := 1.0 / float64(s.totalAlternates)

	expectedScore = make([]float64, s.numLegalPlays)
	moonProb = make([][NumMoonBuckets + 1]float64, s.numLegalPlays)
	winsTrickProb = make([]float64, s.numLegalPlays)

	for i := 0; i < s.numLegalPlays; i++ {
		expectedScore[i] = s.totalScores[i] * scale
		notMoon := s.totalAlternates
		for b := 0; b < NumMoonBuckets; b++ {
			moonProb[i][b] = float64(s.totalMoonCounts[i][b]) * scale
			notMoon -= s.totalMoonCounts[i][b]
		}
		moonProb[i][NumMoonBuckets] = float64(notMoon) * scale
		winsTrickProb[i] = float64(s.totalTrickWins[i]) * scale
	}
	return expectedScore, moonProb, winsTrickProb
}
