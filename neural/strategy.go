package neural

import (
	"fmt"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"github.com/rs/zerolog/log"
	"gorgonia.org/tensor"

	"hearts/game"
	"hearts/random"
	"hearts/searcher"
)

// Strategy runs the policy network over an encoded decision and plays the
// legal card with the lowest predicted score. Inference is serialized
// behind a mutex, so the strategy is safe under the parallel searcher.
type Strategy struct {
	model    *gonnx.Model
	mu       sync.Mutex
	fallback game.Strategy
}

func NewStrategy(modelPath string) (*Strategy, error) {
	model, err := gonnx.NewModelFromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", modelPath, err)
	}
	return &Strategy{
		model:    model,
		fallback: searcher.RandomStrategy{},
	}, nil
}

// NewStrategyOrFallback degrades to the uniform-random intuition when the
// model cannot be loaded, so a match can still run.
func NewStrategyOrFallback(modelPath string) game.Strategy {
	s, err := NewStrategy(modelPath)
	if err != nil {
		log.Warn().Err(err).Msg("neural intuition requested but model load failed; falling back to random")
		return searcher.RandomStrategy{}
	}
	return s
}

func (s *Strategy) ChoosePlay(state *game.KnowableState, rng *random.Generator) game.Card {
	choices := state.LegalPlays()
	if choices.Size() == 1 {
		return choices.FirstCard()
	}

	scores := s.predictScores(state)
	if scores == nil {
		return s.fallback.ChoosePlay(state, rng)
	}

	cards := choices.Cards()
	best := cards[0]
	for _, c := range cards[1:] {
		if scores[c] < scores[best] {
			best = c
		}
	}
	return best
}

// predictScores returns the 52-wide expected-score head, or nil when
// inference fails.
func (s *Strategy) predictScores(state *game.KnowableState) []float32 {
	analyzer := searcher.NewPossibilityAnalyzer(state)
	data := EncodeDecision(state, analyzer)

	in := tensor.New(
		tensor.WithShape(1, TotalScalarFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(data),
	)

	s.mu.Lock()
	outputs, err := s.model.Run(gonnx.Tensors{"main_data": in})
	s.mu.Unlock()
	if err != nil {
		log.Warn().Err(err).Msg("policy inference failed")
		return nil
	}

	out, ok := outputs["expected_score"]
	if !ok {
		log.Warn().Msg("model output 'expected_score' not found")
		return nil
	}

	switch d := out.Data().(type) {
	case []float32:
		if len(d) < game.CardsPerDeck {
			log.Warn().Int("len", len(d)).Msg("expected_score head too short")
			return nil
		}
		return d
	case []float64:
		f32 := make([]float32, len(d))
		for i, v := range d {
			f32[i] = float32(v)
		}
		if len(f32) < game.CardsPerDeck {
			return nil
		}
		return f32
	default:
		log.Warn().Msgf("unexpected output type %T", d)
		return nil
	}
}
