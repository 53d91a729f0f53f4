package stats

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"hpfold/internal/evo"
	"hpfold/internal/fold"
	"hpfold/internal/hp"
)

// Config describes a repeated-run benchmark: the same GA configuration
// executed Runs times with derived seeds, scored against a known optimal
// energy.
type Config struct {
	Sequence      string
	Runs          int
	Population    evo.Config
	Driver        evo.DriverConfig
	OptimalEnergy int
	Seed          int64
}

// RunMetrics is one benchmark row, mirroring the columns of the CSV
// artifact.
type RunMetrics struct {
	Run                   int
	BestEnergy            int
	EvalToBest            int64
	UniqueConformations   int
	GenerationsToBest     int
	BirthGenerationOfBest int
	Evaluations           int64
	StopReason            string
}

// Report bundles the per-run rows with their statistical summary.
type Report struct {
	Sequence string
	Metrics  []RunMetrics
	Summary  Summary
}

// Run executes cfg.Runs independent GA runs, each with its own RNG
// stream and evaluation counter. progress, when non-nil, receives each
// row as it completes.
func Run(ctx context.Context, cfg Config, progress func(RunMetrics)) (Report, error) {
	if cfg.Runs <= 0 {
		return Report{}, fmt.Errorf("benchmark run count must be > 0, got %d", cfg.Runs)
	}
	seq, err := hp.Parse(cfg.Sequence)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Sequence: seq.String(),
		Metrics:  make([]RunMetrics, 0, cfg.Runs),
	}
	for run := 1; run <= cfg.Runs; run++ {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		var counter fold.Counter
		rng := rand.New(rand.NewSource(cfg.Seed + int64(run) - 1))
		pop, err := evo.NewPopulation(cfg.Population, seq, rng, &counter)
		if err != nil {
			return Report{}, fmt.Errorf("run %d: %w", run, err)
		}
		res, err := evo.Run(ctx, cfg.Driver, pop, &counter, nil)
		if err != nil {
			return Report{}, fmt.Errorf("run %d: %w", run, err)
		}

		row := RunMetrics{
			Run:                   run,
			BestEnergy:            res.Best.Fitness,
			EvalToBest:            res.EvalsToBest,
			UniqueConformations:   pop.UniqueAdmitted(),
			GenerationsToBest:     res.GenerationsToBest,
			BirthGenerationOfBest: res.BirthGeneration,
			Evaluations:           res.Evaluations,
			StopReason:            string(res.Reason),
		}
		report.Metrics = append(report.Metrics, row)
		if progress != nil {
			progress(row)
		}
	}

	report.Summary = Summarize(report.Metrics, cfg.OptimalEnergy)
	return report, nil
}

var csvHeader = []string{
	"Run", "BestEnergy", "EvalToBest", "UniqueConformations",
	"GenerationsToBest", "BirthGenerationOfBest",
}

// WriteCSV emits the benchmark rows in the layout downstream analysis
// scripts expect.
func WriteCSV(w io.Writer, metrics []RunMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range metrics {
		record := []string{
			strconv.Itoa(m.Run),
			strconv.Itoa(m.BestEnergy),
			strconv.FormatInt(m.EvalToBest, 10),
			strconv.Itoa(m.UniqueConformations),
			strconv.Itoa(m.GenerationsToBest),
			strconv.Itoa(m.BirthGenerationOfBest),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
