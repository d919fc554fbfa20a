package searcher

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"hearts/game"
	"hearts/random"
	"lukechampine.com/uint128"
)

type Option func(m *MonteCarlo)

// MonteCarlo picks a play by sampling consistent hidden-card worlds
// ("alternates") and rolling each one out to the end of the deal with the
// intuition policy, once per legal play. The play with the lowest mean
// final score wins.
type MonteCarlo struct {
	intuition     game.Strategy
	annotator     Annotator
	minAlternates int
	maxAlternates int
	timeBudget    time.Duration
	parallel      bool
	workers       int
}

func WithMinAlternates(n int) Option {
	return func(m *MonteCarlo) {
		if n > 0 {
			m.minAlternates = n
		}
	}
}

func WithMaxAlternates(n int) Option {
	return func(m *MonteCarlo) {
		if n > 0 {
			m.maxAlternates = n
		}
	}
}

// WithTimeBudget sets the soft deadline. Zero is honored: sampling stops
// as soon as minAlternates worlds have completed.
func WithTimeBudget(d time.Duration) Option {
	return func(m *MonteCarlo) {
		if d >= 0 {
			m.timeBudget = d
		}
	}
}

func WithParallel(parallel bool) Option {
	return func(m *MonteCarlo) {
		m.parallel = parallel
	}
}

func WithAnnotator(a Annotator) Option {
	return func(m *MonteCarlo) {
		m.annotator = a
	}
}

const (
	defaultMinAlternates = 5
	defaultMaxAlternates = 2000
	defaultTimeBudget    = time.Second / 3
)

func NewMonteCarlo(intuition game.Strategy, options ...Option) *MonteCarlo {
	if intuition == nil {
		panic("monte carlo needs an intuition strategy")
	}
	m := &MonteCarlo{
		intuition:     intuition,
		minAlternates: defaultMinAlternates,
		maxAlternates: defaultMaxAlternates,
		timeBudget:    defaultTimeBudget,
		workers:       runtime.NumCPU(),
	}
	for _, option := range options {
		option(m)
	}
	if m.minAlternates > m.maxAlternates {
		m.minAlternates = m.maxAlternates
	}
	return m
}

// ChoosePlay implements game.Strategy.
func (m *MonteCarlo) ChoosePlay(state *game.KnowableState, rng *random.Generator) game.Card {
	choices := state.LegalPlays()
	if choices.Size() == 1 {
		// No decision to make; skip sampling entirely.
		return choices.FirstCard()
	}

	analyzer := NewPossibilityAnalyzer(state)

	var stats *Stats
	if m.parallel {
		stats = m.runParallelTasks(state, analyzer, choices, rng)
	} else {
		stats = m.runRollouts(state, analyzer, choices, rng)
	}

	best := stats.BestPlay(choices)

	if m.annotator != nil {
		expectedScore, moonProb, winsTrickProb := stats.Targets()
		m.annotator.OnDecision(state, analyzer, expectedScore, moonProb, winsTrickProb)
	}
	return best
}

// runRollouts samples alternates in the calling goroutine until the
// budget allows stopping or maxAlternates is reached.
func (m *MonteCarlo) runRollouts(state *game.KnowableState, analyzer *PossibilityAnalyzer,
	choices game.CardSet, rng *random.Generator) *Stats {

	stats := NewStats(choices.Size())
	start := time.Now()
	for alt := 0; alt < m.maxAlternates; alt++ {
		index := rng.Range128(analyzer.Possibilities())
		m.playOneAlternate(state, analyzer, index, choices, rng, stats)
		if stats.TotalAlternates() >= m.minAlternates && time.Since(start) >= m.timeBudget {
			break
		}
	}
	return stats
}

// runParallelTasks splits the alternates across a worker pool. Workers
// sample into private Stats with private generators; a mutex guards only
// the final merges. In-flight alternates always run to completion; the
// deadline is checked between alternates only.
func (m *MonteCarlo) runParallelTasks(state *game.KnowableState, analyzer *PossibilityAnalyzer,
	choices game.CardSet, rng *random.Generator) *Stats {

	total := NewStats(choices.Size())
	var mu sync.Mutex
	var started, completed atomic.Int64

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < m.workers; w++ {
		wg.Add(1)
		workerRng := rng.Split()
		go func(workerRng *random.Generator) {
			defer wg.Done()
			local := NewStats(choices.Size())
			for {
				if started.Add(1) > int64(m.maxAlternates) {
					break
				}
				index := workerRng.Range128(analyzer.Possibilities())
				m.playOneAlternate(state, analyzer, index, choices, workerRng, local)
				done := completed.Add(1)
				if done >= int64(m.minAlternates) && time.Since(start) >= m.timeBudget {
					break
				}
			}
			mu.Lock()
			total.Merge(local)
			mu.Unlock()
		}(workerRng)
	}
	wg.Wait()
	return total
}

// playOneAlternate actualizes one hidden world and rolls out every legal
// play to the end of the deal.
func (m *MonteCarlo) playOneAlternate(state *game.KnowableState, analyzer *PossibilityAnalyzer,
	index uint128.Uint128, choices game.CardSet, rng *random.Generator, stats *Stats) {

	hands := state.PrepareHands()
	analyzer.ActualizePossibility(index, &hands)
	state.Voids().VerifyVoids(&hands)

	alternate := game.GameStateFromKnowable(state, hands)
	currentPlayer := state.CurrentPlayer()

	for iPlay, card := range choices.Cards() {
		next := alternate
		stats.TrackTrickWinner(&next, iPlay)
		next.PlayCard(card)
		outcome := next.PlayOutGame(m.intuition, rng)
		stats.UntrackTrickWinner(&next)
		stats.UpdateForGameOutcome(&outcome, currentPlayer, iPlay)
	}
	stats.FinishedOneAlternate()
}
