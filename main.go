package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hearts/experiments"
	"hearts/experiments/metrics"
	"hearts/game"
	"hearts/meta"
	"hearts/neural"
	"hearts/player"
	"hearts/random"
	"hearts/searcher"
)

type config struct {
	deals     int
	seed      uint64
	seats     string
	min       int
	max       int
	budget    time.Duration
	parallel  bool
	model     string
	annotate  string
	outDir    string
	verbose   bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.deals, "deals", meta.DEALS, "number of deals to play")
	flag.Uint64Var(&cfg.seed, "seed", 0, "random seed (0 seeds from the clock)")
	flag.StringVar(&cfg.seats, "seats", "mc,random,random,random",
		"comma separated strategy per seat: mc, mcn, random, neural, human")
	flag.IntVar(&cfg.min, "min", meta.MIN_ALTERNATES, "min sampled worlds per decision")
	flag.IntVar(&cfg.max, "max", meta.MAX_ALTERNATES, "max sampled worlds per decision")
	flag.DurationVar(&cfg.budget, "budget", meta.TIME_BUDGET, "time budget per decision")
	flag.BoolVar(&cfg.parallel, "parallel", false, "sample worlds on a worker pool")
	flag.StringVar(&cfg.model, "model", "models/hearts.onnx", "ONNX model for the neural intuition")
	flag.StringVar(&cfg.annotate, "annotate", "", "capture per-decision training data to this CSV file")
	flag.StringVar(&cfg.outDir, "out", "", "write match records under this directory")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).Level(level)

	if cfg.seed == 0 {
		cfg.seed = uint64(time.Now().UnixNano())
	}
	rng := random.NewGenerator(cfg.seed)

	var annotator searcher.Annotator
	if cfg.annotate != "" {
		w, err := experiments.NewDataWriter(cfg.annotate)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open annotation file")
		}
		defer w.Close()
		annotator = w
	}

	names := strings.Split(cfg.seats, ",")
	if len(names) != game.NumPlayers {
		log.Fatal().Str("seats", cfg.seats).Msg("need exactly four seat strategies")
	}

	matchConfig := metrics.MatchConfig{
		ID:            1,
		MinAlternates: cfg.min,
		MaxAlternates: cfg.max,
		TimeBudget:    cfg.budget,
		Parallel:      cfg.parallel,
	}
	var strategies [game.NumPlayers]game.Strategy
	for i, name := range names {
		matchConfig.Seats[i] = strings.TrimSpace(name)
		strategies[i] = makeStrategy(matchConfig.Seats[i], &cfg, annotator)
	}

	fmt.Printf("Playing %d deals: %s (seed %d)\n", cfg.deals, cfg.seats, cfg.seed)
	games, moves := experiments.RunMatch(matchConfig, strategies, cfg.deals, rng)

	var totals [game.NumPlayers]int
	for _, g := range games {
		for p := 0; p < game.NumPlayers; p++ {
			totals[p] += g.Scores[p]
		}
	}
	fmt.Printf("Totals after %d deals:\n", len(games))
	for p := 0; p < game.NumPlayers; p++ {
		fmt.Printf("  seat %d (%s): %d points\n", p, matchConfig.Seats[p], totals[p])
	}

	if cfg.outDir != "" {
		if err := experiments.WriteMatch(cfg.outDir, matchConfig, games, moves); err != nil {
			log.Fatal().Err(err).Msg("cannot write match records")
		}
	}
}

func makeStrategy(name string, cfg *config, annotator searcher.Annotator) game.Strategy {
	options := []searcher.Option{
		searcher.WithMinAlternates(cfg.min),
		searcher.WithMaxAlternates(cfg.max),
		searcher.WithTimeBudget(cfg.budget),
		searcher.WithParallel(cfg.parallel),
		searcher.WithAnnotator(annotator),
	}

	switch name {
	case "random":
		return searcher.RandomStrategy{}
	case "human":
		return player.NewHumanPlayer(os.Stdin, os.Stdout)
	case "neural":
		return neural.NewStrategyOrFallback(cfg.model)
	case "mc":
		return searcher.NewMonteCarlo(searcher.RandomStrategy{}, options...)
	case "mcn":
		// Monte Carlo with the neural intuition driving the rollouts.
		return searcher.NewMonteCarlo(neural.NewStrategyOrFallback(cfg.model), options...)
	default:
		log.Fatal().Str("strategy", name).Msg("unknown strategy")
		return nil
	}
}
