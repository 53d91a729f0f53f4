package tuning

import "context"

// Params are the GA hyperparameters exposed to black-box tuning.
type Params struct {
	PopulationSize int
	MutationProb   float64
	CrossoverProb  float64
}

// Bounds is the search box for Params.
type Bounds struct {
	PopulationSizeMin int
	PopulationSizeMax int
	MutationProbMin   float64
	MutationProbMax   float64
	CrossoverProbMin  float64
	CrossoverProbMax  float64
}

// DefaultBounds matches the reference tuning study: population 500-1000,
// mutation 0.01-0.2, crossover 0.7-0.9.
func DefaultBounds() Bounds {
	return Bounds{
		PopulationSizeMin: 500,
		PopulationSizeMax: 1000,
		MutationProbMin:   0.01,
		MutationProbMax:   0.2,
		CrossoverProbMin:  0.7,
		CrossoverProbMax:  0.9,
	}
}

func (b Bounds) clamp(p Params) Params {
	if p.PopulationSize < b.PopulationSizeMin {
		p.PopulationSize = b.PopulationSizeMin
	}
	if p.PopulationSize > b.PopulationSizeMax {
		p.PopulationSize = b.PopulationSizeMax
	}
	if p.MutationProb < b.MutationProbMin {
		p.MutationProb = b.MutationProbMin
	}
	if p.MutationProb > b.MutationProbMax {
		p.MutationProb = b.MutationProbMax
	}
	if p.CrossoverProb < b.CrossoverProbMin {
		p.CrossoverProb = b.CrossoverProbMin
	}
	if p.CrossoverProb > b.CrossoverProbMax {
		p.CrossoverProb = b.CrossoverProbMax
	}
	return p
}

// Objective scores a parameter point; tuners maximize it. For the GA it
// is the negated final best energy, so lower energies score higher.
type Objective func(ctx context.Context, p Params) (float64, error)

// Evaluation records one objective probe for reporting.
type Evaluation struct {
	Params Params
	Score  float64
}

type TuneResult struct {
	Best        Params
	BestScore   float64
	Evaluations []Evaluation
}

type Tuner interface {
	Name() string
	Tune(ctx context.Context, bounds Bounds, objective Objective) (TuneResult, error)
}
