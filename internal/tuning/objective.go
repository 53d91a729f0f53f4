package tuning

import (
	"context"
	"math/rand"

	"hpfold/internal/evo"
	"hpfold/internal/fold"
	"hpfold/internal/hp"
)

// GAObjective wraps a full GA run as a black-box objective: construct a
// population with the candidate parameters, drive it to termination,
// and return the negated final best energy so that better foldings
// score higher. Every probe gets a fresh evaluation counter and an RNG
// stream derived from seed, keeping probes independent and repeatable.
func GAObjective(seq hp.Sequence, driver evo.DriverConfig, base evo.Config, seed int64) Objective {
	probes := int64(0)
	return func(ctx context.Context, p Params) (float64, error) {
		probes++
		cfg := base
		cfg.Size = p.PopulationSize
		cfg.MutationProb = p.MutationProb
		cfg.CrossoverProb = p.CrossoverProb

		var counter fold.Counter
		rng := rand.New(rand.NewSource(seed + probes))
		pop, err := evo.NewPopulation(cfg, seq, rng, &counter)
		if err != nil {
			return 0, err
		}
		res, err := evo.Run(ctx, driver, pop, &counter, nil)
		if err != nil {
			return 0, err
		}
		return -float64(res.Best.Fitness), nil
	}
}
