package evo

import (
	"context"
	"fmt"

	"hpfold/internal/fold"
)

type StopReason string

const (
	StopThreshold StopReason = "threshold"
	StopBudget    StopReason = "budget"
)

// DriverConfig owns the run-level stopping conditions: an energy
// threshold on the fittest member and a global evaluation budget.
type DriverConfig struct {
	EnergyThreshold int
	MaxEvaluations  int64
}

// Improvement is invoked whenever the best-seen conformation improves,
// including once for the initial fittest.
type Improvement func(best fold.Conformation, evaluations int64, generation int)

// Result reports the terminal state of a run. Budget exhaustion is a
// normal outcome, not an error; the best-found folding is always
// returned.
type Result struct {
	Best              fold.Conformation
	Evaluations       int64
	Generations       int
	EvalsToBest       int64
	GenerationsToBest int
	BirthGeneration   int
	Reason            StopReason
}

// Run drives pop one generation at a time until the fittest reaches the
// energy threshold or the evaluation counter exhausts the budget. The
// context is checked between steps, the only safe suspension point.
func Run(ctx context.Context, cfg DriverConfig, pop *Population, counter *fold.Counter, onImprove Improvement) (Result, error) {
	if cfg.MaxEvaluations <= 0 {
		return Result{}, fmt.Errorf("evaluation budget must be > 0, got %d", cfg.MaxEvaluations)
	}

	best := pop.Fittest()
	res := Result{
		Best:            best,
		EvalsToBest:     counter.Total(),
		BirthGeneration: best.Generation,
	}
	if onImprove != nil {
		onImprove(best, counter.Total(), 0)
	}

	for pop.Fittest().Fitness > cfg.EnergyThreshold && counter.Total() < cfg.MaxEvaluations {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		pop.Step()
		res.Generations++

		current := pop.Fittest()
		if current.Fitness < res.Best.Fitness {
			res.Best = current
			res.EvalsToBest = counter.Total()
			res.GenerationsToBest = res.Generations
			res.BirthGeneration = current.Generation
			if onImprove != nil {
				onImprove(current, counter.Total(), res.Generations)
			}
		}
	}

	res.Evaluations = counter.Total()
	if res.Best.Fitness <= cfg.EnergyThreshold {
		res.Reason = StopThreshold
	} else {
		res.Reason = StopBudget
	}
	return res, nil
}
