package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"hpfold/internal/evo"
	"hpfold/internal/fold"
	"hpfold/internal/hp"
	"hpfold/internal/model"
	"hpfold/internal/stats"
	"hpfold/internal/storage"
	"hpfold/internal/tuning"
)

// thresholdUnset is an impossible energy threshold (fitness is never
// positive); it marks "derive from the sequence preset".
const thresholdUnset = 1

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "benchmark":
		return runBenchmark(ctx, args[1:])
	case "tune":
		return runTune(ctx, args[1:])
	case "render":
		return runRender(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: hpfoldctl <run|benchmark|tune|render|runs> [flags]\npresets: %s",
		msg, strings.Join(presetNames(), " "))
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	sequence := fs.String("sequence", "hp20", "residue string or preset name")
	popSize := fs.Int("pop", 600, "population size")
	mutProb := fs.Float64("mut", 0.02, "per-locus mutation probability")
	crossProb := fs.Float64("cross", 0.8, "per-pair crossover probability")
	tournament := fs.Int("tournament", evo.DefaultTournamentSize, "tournament sample size")
	threshold := fs.Int("threshold", thresholdUnset, "energy threshold (defaults to the preset optimum)")
	maxEvals := fs.Int64("max-evals", 500000, "evaluation budget")
	seed := fs.Int64("seed", 1, "rng seed")
	quiet := fs.Bool("quiet", false, "suppress per-improvement folding pictures")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hpfold.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := runRequest{
		RunID:           *runID,
		Sequence:        *sequence,
		PopulationSize:  *popSize,
		MutationProb:    *mutProb,
		CrossoverProb:   *crossProb,
		TournamentSize:  *tournament,
		EnergyThreshold: *threshold,
		MaxEvaluations:  *maxEvals,
		Seed:            *seed,
		Store:           *storeKind,
		DBPath:          *dbPath,
	}
	if *configPath != "" {
		loaded, err := loadRunRequest(*configPath)
		if err != nil {
			return err
		}
		req = req.merge(loaded)
	}

	residues, optimal, isPreset := resolveSequence(req.Sequence)
	seq, err := hp.Parse(residues)
	if err != nil {
		return err
	}
	if req.EnergyThreshold == thresholdUnset {
		if !isPreset {
			return usageError("explicit -threshold required for non-preset sequences")
		}
		req.EnergyThreshold = optimal
	}

	store, err := storage.NewStore(req.Store, req.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	var counter fold.Counter
	rng := rand.New(rand.NewSource(req.Seed))
	cfg := evo.Config{
		Size:           req.PopulationSize,
		MutationProb:   req.MutationProb,
		CrossoverProb:  req.CrossoverProb,
		TournamentSize: req.TournamentSize,
	}
	fmt.Printf("seeding population size=%d sequence=%s\n", cfg.Size, seq)
	pop, err := evo.NewPopulation(cfg, seq, rng, &counter)
	if err != nil {
		return err
	}

	var history []int
	onImprove := func(best fold.Conformation, evaluations int64, generation int) {
		history = append(history, best.Fitness)
		fmt.Printf("gen=%d evals=%d %s\n", generation, evaluations, best.StatusString())
		if !*quiet {
			fmt.Print(best.Render())
		}
	}
	res, err := evo.Run(ctx, evo.DriverConfig{
		EnergyThreshold: req.EnergyThreshold,
		MaxEvaluations:  req.MaxEvaluations,
	}, pop, &counter, onImprove)
	if err != nil {
		return err
	}

	id := req.RunID
	if id == "" {
		id = newRunID()
	}
	if err := persistRun(ctx, store, id, req, seq, pop, res, history); err != nil {
		return err
	}

	fmt.Printf("run=%s stop=%s best=%d generation=%d evals=%d unique=%d\n",
		id, res.Reason, res.Best.Fitness, res.Best.Generation, res.Evaluations, pop.UniqueAdmitted())
	fmt.Print(res.Best.Render())
	return nil
}

func persistRun(ctx context.Context, store storage.Store, id string, req runRequest, seq hp.Sequence, pop *evo.Population, res evo.Result, history []int) error {
	versioned := model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
	run := model.RunRecord{
		VersionedRecord:   versioned,
		ID:                id,
		CreatedAtUTC:      time.Now().UTC().Format(time.RFC3339Nano),
		Sequence:          seq.String(),
		PopulationSize:    pop.Params().Size,
		MutationProb:      pop.Params().MutationProb,
		CrossoverProb:     pop.Params().CrossoverProb,
		TournamentSize:    pop.Params().TournamentSize,
		EnergyThreshold:   req.EnergyThreshold,
		MaxEvaluations:    req.MaxEvaluations,
		Seed:              req.Seed,
		BestEnergy:        res.Best.Fitness,
		BestEncoding:      res.Best.EncodingString(),
		BestGeneration:    res.Best.Generation,
		Evaluations:       res.Evaluations,
		Generations:       res.Generations,
		EvalsToBest:       res.EvalsToBest,
		GenerationsToBest: res.GenerationsToBest,
		UniqueEncodings:   pop.UniqueAdmitted(),
		StopReason:        string(res.Reason),
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return err
	}

	positions := make([]model.LatticePoint, len(res.Best.Positions))
	for i, p := range res.Best.Positions {
		positions[i] = model.LatticePoint{X: p.X, Y: p.Y}
	}
	record := model.FoldRecord{
		VersionedRecord: versioned,
		RunID:           id,
		Encoding:        res.Best.EncodingString(),
		Energy:          res.Best.Fitness,
		Generation:      res.Best.Generation,
		Positions:       positions,
	}
	if err := store.SaveBestFold(ctx, id, record); err != nil {
		return err
	}
	return store.SaveEnergyHistory(ctx, id, history)
}

func runBenchmark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	sequence := fs.String("sequence", "hp64", "residue string or preset name")
	runs := fs.Int("runs", 5, "number of independent GA runs")
	popSize := fs.Int("pop", 1000, "population size")
	mutProb := fs.Float64("mut", 0.05, "per-locus mutation probability")
	crossProb := fs.Float64("cross", 0.85, "per-pair crossover probability")
	tournament := fs.Int("tournament", evo.DefaultTournamentSize, "tournament sample size")
	threshold := fs.Int("threshold", thresholdUnset, "energy threshold (defaults to the preset optimum)")
	maxEvals := fs.Int64("max-evals", 100000, "evaluation budget per run")
	optimal := fs.Int("optimal", thresholdUnset, "optimal energy for success accounting (defaults to the preset optimum)")
	seed := fs.Int64("seed", 1, "base rng seed; run i uses seed+i-1")
	csvPath := fs.String("csv", "", "write per-run metrics CSV to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	residues, presetOptimal, isPreset := resolveSequence(*sequence)
	if *threshold == thresholdUnset || *optimal == thresholdUnset {
		if !isPreset {
			return usageError("explicit -threshold and -optimal required for non-preset sequences")
		}
		if *threshold == thresholdUnset {
			*threshold = presetOptimal
		}
		if *optimal == thresholdUnset {
			*optimal = presetOptimal
		}
	}

	cfg := stats.Config{
		Sequence: residues,
		Runs:     *runs,
		Population: evo.Config{
			Size:           *popSize,
			MutationProb:   *mutProb,
			CrossoverProb:  *crossProb,
			TournamentSize: *tournament,
		},
		Driver: evo.DriverConfig{
			EnergyThreshold: *threshold,
			MaxEvaluations:  *maxEvals,
		},
		OptimalEnergy: *optimal,
		Seed:          *seed,
	}

	fmt.Printf("benchmarking %d runs, sequence length %d, target %d\n", cfg.Runs, len([]rune(residues)), cfg.OptimalEnergy)
	report, err := stats.Run(ctx, cfg, func(m stats.RunMetrics) {
		fmt.Printf("run %d: best=%d evalsToBest=%d unique=%d gensToBest=%d birthGen=%d stop=%s\n",
			m.Run, m.BestEnergy, m.EvalToBest, m.UniqueConformations, m.GenerationsToBest, m.BirthGenerationOfBest, m.StopReason)
	})
	if err != nil {
		return err
	}

	if *csvPath != "" {
		file, err := os.Create(*csvPath)
		if err != nil {
			return err
		}
		if err := stats.WriteCSV(file, report.Metrics); err != nil {
			_ = file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *csvPath)
	}

	printSummary(report.Summary, cfg.OptimalEnergy)
	return nil
}

func printSummary(s stats.Summary, optimal int) {
	fmt.Println("=== benchmark summary ===")
	fmt.Printf("runs: %d, reaching %d: %d (%.0f%%)\n", s.Runs, optimal, s.SuccessRuns, s.SuccessRate*100)
	fmt.Printf("best energy: mean=%.2f std=%.2f\n", s.MeanBestEnergy, s.StdBestEnergy)
	fmt.Printf("evals to best: mean=%.2f std=%.2f min=%d max=%d\n", s.MeanEvalToBest, s.StdEvalToBest, s.MinEvalToBest, s.MaxEvalToBest)
	fmt.Printf("generations to best: mean=%.2f std=%.2f\n", s.MeanGenerationsToBest, s.StdGenerationsToBest)
	fmt.Printf("birth generation of best: mean=%.2f std=%.2f\n", s.MeanBirthGeneration, s.StdBirthGeneration)
}

func runTune(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tune", flag.ContinueOnError)
	sequence := fs.String("sequence", "hp48", "residue string or preset name")
	tunerName := fs.String("tuner", "random", "tuner: random|anneal")
	initPoints := fs.Int("init-points", 5, "random probes before refinement (random tuner)")
	iterations := fs.Int("iters", 10, "refinement probes (random tuner)")
	steps := fs.Int("steps", 15, "perturbation steps (anneal tuner)")
	threshold := fs.Int("threshold", thresholdUnset, "energy threshold per probe run (defaults to the preset optimum)")
	maxEvals := fs.Int64("max-evals", 50000, "evaluation budget per probe run")
	seed := fs.Int64("seed", 42, "rng seed")
	popMin := fs.Int("pop-min", 0, "population lower bound (0 keeps default)")
	popMax := fs.Int("pop-max", 0, "population upper bound (0 keeps default)")
	mutMin := fs.Float64("mut-min", 0, "mutation lower bound (0 keeps default)")
	mutMax := fs.Float64("mut-max", 0, "mutation upper bound (0 keeps default)")
	crossMin := fs.Float64("cross-min", 0, "crossover lower bound (0 keeps default)")
	crossMax := fs.Float64("cross-max", 0, "crossover upper bound (0 keeps default)")
	compareDefault := fs.Bool("compare-default", false, "also evaluate the default parameters and compare")
	if err := fs.Parse(args); err != nil {
		return err
	}

	residues, optimal, isPreset := resolveSequence(*sequence)
	seq, err := hp.Parse(residues)
	if err != nil {
		return err
	}
	if *threshold == thresholdUnset {
		if !isPreset {
			return usageError("explicit -threshold required for non-preset sequences")
		}
		*threshold = optimal
	}

	bounds := tuning.DefaultBounds()
	if *popMin > 0 {
		bounds.PopulationSizeMin = *popMin
	}
	if *popMax > 0 {
		bounds.PopulationSizeMax = *popMax
	}
	if *mutMin > 0 {
		bounds.MutationProbMin = *mutMin
	}
	if *mutMax > 0 {
		bounds.MutationProbMax = *mutMax
	}
	if *crossMin > 0 {
		bounds.CrossoverProbMin = *crossMin
	}
	if *crossMax > 0 {
		bounds.CrossoverProbMax = *crossMax
	}
	if bounds.PopulationSizeMin > bounds.PopulationSizeMax {
		return usageError("population bounds are inverted")
	}

	var tuner tuning.Tuner
	rng := rand.New(rand.NewSource(*seed))
	switch *tunerName {
	case "random":
		tuner = &tuning.RandomSearch{Rand: rng, InitPoints: *initPoints, Iterations: *iterations}
	case "anneal":
		tuner = &tuning.Anneal{Rand: rng, Steps: *steps}
	default:
		return usageError(fmt.Sprintf("unknown tuner: %s", *tunerName))
	}

	driver := evo.DriverConfig{EnergyThreshold: *threshold, MaxEvaluations: *maxEvals}
	objective := tuning.GAObjective(seq, driver, evo.Config{}, *seed)

	probe := 0
	counted := func(ctx context.Context, p tuning.Params) (float64, error) {
		probe++
		score, err := objective(ctx, p)
		if err != nil {
			return 0, err
		}
		fmt.Printf("probe %d: pop=%d mut=%.4f cross=%.4f => energy %d\n",
			probe, p.PopulationSize, p.MutationProb, p.CrossoverProb, -int(score))
		return score, nil
	}

	result, err := tuner.Tune(ctx, bounds, counted)
	if err != nil {
		return err
	}
	fmt.Printf("best params: pop=%d mut=%.4f cross=%.4f => energy %d (%s, %d probes)\n",
		result.Best.PopulationSize, result.Best.MutationProb, result.Best.CrossoverProb,
		-int(result.BestScore), tuner.Name(), len(result.Evaluations))

	if *compareDefault {
		defaults := tuning.Params{PopulationSize: 600, MutationProb: 0.02, CrossoverProb: 0.8}
		defaultScore, err := objective(ctx, defaults)
		if err != nil {
			return err
		}
		fmt.Printf("default params: pop=%d mut=%.4f cross=%.4f => energy %d\n",
			defaults.PopulationSize, defaults.MutationProb, defaults.CrossoverProb, -int(defaultScore))
		if result.BestScore > defaultScore {
			fmt.Println("tuned parameters performed better")
		} else {
			fmt.Println("default parameters performed better")
		}
	}
	return nil
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	sequence := fs.String("sequence", "", "residue string or preset name (required)")
	encoding := fs.String("encoding", "", "turn encoding over {L,F,R} (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sequence == "" || *encoding == "" {
		return usageError("render requires -sequence and -encoding")
	}

	residues, _, _ := resolveSequence(*sequence)
	seq, err := hp.Parse(residues)
	if err != nil {
		return err
	}
	turns, err := fold.ParseEncoding(*encoding)
	if err != nil {
		return err
	}
	if len(turns) != seq.Len()-2 {
		return fmt.Errorf("encoding length %d does not match sequence length %d (want %d turns)",
			len(turns), seq.Len(), seq.Len()-2)
	}

	c := fold.New(seq)
	copy(c.Encoding, turns)
	c.Refresh()
	if !c.Valid {
		return fmt.Errorf("encoding %s self-intersects on sequence %s", *encoding, seq)
	}
	var counter fold.Counter
	c.Score(&counter)

	fmt.Println(c.StatusString())
	fmt.Print(c.Render())
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hpfold.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s %s len=%d pop=%d best=%d evals=%d stop=%s\n",
			run.ID, run.CreatedAtUTC, len(run.Sequence), run.PopulationSize,
			run.BestEnergy, run.Evaluations, run.StopReason)
	}
	return nil
}

func newRunID() string {
	return "run-" + time.Now().UTC().Format("20060102T150405.000000000")
}
