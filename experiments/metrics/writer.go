package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped subfolder for one experiment run.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string { return w.baseDir }

func (w *Writer) WriteMatchConfigs(configs []MatchConfig) error {
	path := filepath.Join(w.baseDir, "match_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create match configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "seat0", "seat1", "seat2", "seat3", "min_alternates", "max_alternates", "time_budget", "parallel"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write match configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Seats[0],
			config.Seats[1],
			config.Seats[2],
			config.Seats[3],
			strconv.Itoa(config.MinAlternates),
			strconv.Itoa(config.MaxAlternates),
			config.TimeBudget.String(),
			strconv.FormatBool(config.Parallel),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write match config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "match", "deal", "score0", "score1", "score2", "score3",
		"shot_the_moon", "stopped_the_moon", "shooter", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			strconv.Itoa(record.Match),
			record.Deal,
			strconv.Itoa(record.Scores[0]),
			strconv.Itoa(record.Scores[1]),
			strconv.Itoa(record.Scores[2]),
			strconv.Itoa(record.Scores[3]),
			strconv.FormatBool(record.ShotTheMoon),
			strconv.FormatBool(record.StoppedTheMoon),
			strconv.Itoa(record.Shooter),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "play", "player", "card", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Game,
			strconv.Itoa(record.Play),
			strconv.Itoa(record.Player),
			record.Card,
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}
