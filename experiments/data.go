package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"hearts/game"
	"hearts/searcher"
)

// DataWriter is a searcher.Annotator that captures per-decision rollout
// statistics as CSV training rows: one row per legal play, holding the
// expected score, the five moon-event frequencies and the trick-win
// probability the sampling produced for that play.
type DataWriter struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

func NewDataWriter(path string) (*DataWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create data file: %w", err)
	}

	w := csv.NewWriter(f)
	header := []string{"deal", "play", "player", "card",
		"expected_score", "moon_i_shot", "moon_other_shot", "moon_i_stopped", "moon_other_stopped", "moon_none",
		"win_trick_prob"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write data header: %w", err)
	}
	return &DataWriter{f: f, w: w}, nil
}

func (d *DataWriter) OnDecision(state *game.KnowableState, analyzer *searcher.PossibilityAnalyzer,
	expectedScore []float64, moonProb [][searcher.NumMoonBuckets + 1]float64, winsTrickProb []float64) {

	deal := game.HexString(state.DealIndex(), 24)
	choices := state.LegalPlays().Cards()

	d.mu.Lock()
	defer d.mu.Unlock()
	for i, card := range choices {
		row := []string{
			deal,
			strconv.Itoa(state.PlayNumber()),
			strconv.Itoa(state.CurrentPlayer()),
			card.String(),
			formatFloat(expectedScore[i]),
		}
		for b := 0; b <= searcher.NumMoonBuckets; b++ {
			row = append(row, formatFloat(moonProb[i][b]))
		}
		row = append(row, formatFloat(winsTrickProb[i]))
		d.w.Write(row)
	}
}

func (d *DataWriter) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.w.Flush()
	if err := d.w.Error(); err != nil {
		d.f.Close()
		return err
	}
	return d.f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
