package tuning

import (
	"context"
	"fmt"
	"math/rand"
)

// RandomSearch probes the bounds uniformly for InitPoints evaluations,
// then spends Iterations refining around the best point so far with a
// shrinking sampling radius. A surrogate-free stand-in for the Bayesian
// optimizer the reference workflow used.
type RandomSearch struct {
	Rand       *rand.Rand
	InitPoints int
	Iterations int
}

func (t *RandomSearch) Name() string { return "random_search" }

func (t *RandomSearch) Tune(ctx context.Context, bounds Bounds, objective Objective) (TuneResult, error) {
	if t.Rand == nil {
		return TuneResult{}, fmt.Errorf("random search requires a rand source")
	}
	initPoints := t.InitPoints
	if initPoints <= 0 {
		initPoints = 5
	}
	iterations := t.Iterations
	if iterations < 0 {
		iterations = 10
	}

	var result TuneResult
	probe := func(p Params) error {
		score, err := objective(ctx, p)
		if err != nil {
			return err
		}
		result.Evaluations = append(result.Evaluations, Evaluation{Params: p, Score: score})
		if len(result.Evaluations) == 1 || score > result.BestScore {
			result.Best = p
			result.BestScore = score
		}
		return nil
	}

	for i := 0; i < initPoints; i++ {
		if err := ctx.Err(); err != nil {
			return TuneResult{}, err
		}
		if err := probe(t.uniform(bounds)); err != nil {
			return TuneResult{}, err
		}
	}

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return TuneResult{}, err
		}
		// Radius decays linearly toward a tenth of the box.
		radius := 1.0 - 0.9*float64(i)/float64(max(iterations-1, 1))
		if err := probe(t.nearBest(bounds, result.Best, radius)); err != nil {
			return TuneResult{}, err
		}
	}

	return result, nil
}

func (t *RandomSearch) uniform(b Bounds) Params {
	return Params{
		PopulationSize: b.PopulationSizeMin + t.Rand.Intn(b.PopulationSizeMax-b.PopulationSizeMin+1),
		MutationProb:   b.MutationProbMin + t.Rand.Float64()*(b.MutationProbMax-b.MutationProbMin),
		CrossoverProb:  b.CrossoverProbMin + t.Rand.Float64()*(b.CrossoverProbMax-b.CrossoverProbMin),
	}
}

func (t *RandomSearch) nearBest(b Bounds, center Params, radius float64) Params {
	popSpan := float64(b.PopulationSizeMax-b.PopulationSizeMin) * radius
	mutSpan := (b.MutationProbMax - b.MutationProbMin) * radius
	crossSpan := (b.CrossoverProbMax - b.CrossoverProbMin) * radius
	candidate := Params{
		PopulationSize: center.PopulationSize + int((t.Rand.Float64()*2-1)*popSpan),
		MutationProb:   center.MutationProb + (t.Rand.Float64()*2-1)*mutSpan,
		CrossoverProb:  center.CrossoverProb + (t.Rand.Float64()*2-1)*crossSpan,
	}
	return b.clamp(candidate)
}
