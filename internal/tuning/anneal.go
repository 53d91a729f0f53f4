package tuning

import (
	"context"
	"fmt"
	"math/rand"
)

// Anneal is a local perturbation tuner: starting from the center of the
// bounds it proposes annealed random steps and keeps the best point
// seen. Steps shrink by AnnealingFactor after every accepted candidate.
type Anneal struct {
	Rand            *rand.Rand
	Steps           int
	StepSize        float64
	AnnealingFactor float64
}

func (t *Anneal) Name() string { return "anneal" }

func (t *Anneal) Tune(ctx context.Context, bounds Bounds, objective Objective) (TuneResult, error) {
	if t.Rand == nil {
		return TuneResult{}, fmt.Errorf("anneal tuner requires a rand source")
	}
	steps := t.Steps
	if steps <= 0 {
		steps = 15
	}
	stepSize := t.StepSize
	if stepSize <= 0 {
		stepSize = 0.35
	}
	annealing := t.AnnealingFactor
	if annealing <= 0 || annealing > 1 {
		annealing = 0.9
	}

	current := Params{
		PopulationSize: (bounds.PopulationSizeMin + bounds.PopulationSizeMax) / 2,
		MutationProb:   (bounds.MutationProbMin + bounds.MutationProbMax) / 2,
		CrossoverProb:  (bounds.CrossoverProbMin + bounds.CrossoverProbMax) / 2,
	}
	score, err := objective(ctx, current)
	if err != nil {
		return TuneResult{}, err
	}
	result := TuneResult{
		Best:        current,
		BestScore:   score,
		Evaluations: []Evaluation{{Params: current, Score: score}},
	}

	scale := stepSize
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return TuneResult{}, err
		}

		candidate := bounds.clamp(Params{
			PopulationSize: result.Best.PopulationSize + int((t.Rand.Float64()*2-1)*scale*float64(bounds.PopulationSizeMax-bounds.PopulationSizeMin)),
			MutationProb:   result.Best.MutationProb + (t.Rand.Float64()*2-1)*scale*(bounds.MutationProbMax-bounds.MutationProbMin),
			CrossoverProb:  result.Best.CrossoverProb + (t.Rand.Float64()*2-1)*scale*(bounds.CrossoverProbMax-bounds.CrossoverProbMin),
		})
		score, err := objective(ctx, candidate)
		if err != nil {
			return TuneResult{}, err
		}
		result.Evaluations = append(result.Evaluations, Evaluation{Params: candidate, Score: score})
		if score > result.BestScore {
			result.Best = candidate
			result.BestScore = score
			scale *= annealing
		}
	}

	return result, nil
}
