package evo

import (
	"context"
	"math/rand"
	"testing"

	"hpfold/internal/fold"
)

func TestRunStopsOnBudget(t *testing.T) {
	pop, counter := newTestPopulation(t, 20, 5)
	ctx := context.Background()

	budget := counter.Total() + 2000
	res, err := Run(ctx, DriverConfig{EnergyThreshold: -1000, MaxEvaluations: budget}, pop, counter, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Reason != StopBudget {
		t.Fatalf("reason: got=%s want=%s", res.Reason, StopBudget)
	}
	if res.Evaluations < budget {
		t.Fatalf("expected budget exhaustion, evaluations=%d budget=%d", res.Evaluations, budget)
	}
	if res.Best.Fitness >= 0 {
		t.Fatalf("best-found result must be reported on budget exhaustion, fitness=%d", res.Best.Fitness)
	}
	if res.EvalsToBest > res.Evaluations || res.GenerationsToBest > res.Generations {
		t.Fatalf("inconsistent best-seen bookkeeping: %+v", res)
	}
}

func TestRunStopsOnThreshold(t *testing.T) {
	pop, counter := newTestPopulation(t, 20, 6)

	// The initial fittest already satisfies a -1 threshold, so the run
	// terminates without stepping.
	res, err := Run(context.Background(), DriverConfig{EnergyThreshold: -1, MaxEvaluations: 10}, pop, counter, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Reason != StopThreshold {
		t.Fatalf("reason: got=%s want=%s", res.Reason, StopThreshold)
	}
	if res.Generations != 0 {
		t.Fatalf("expected immediate threshold stop, generations=%d", res.Generations)
	}
}

func TestRunReportsImprovements(t *testing.T) {
	pop, counter := newTestPopulation(t, 20, 7)

	var seen []int
	onImprove := func(best fold.Conformation, _ int64, _ int) {
		seen = append(seen, best.Fitness)
	}
	res, err := Run(context.Background(), DriverConfig{EnergyThreshold: -1000, MaxEvaluations: counter.Total() + 3000}, pop, counter, onImprove)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(seen) == 0 {
		t.Fatal("expected the initial fittest to be reported")
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] >= seen[i-1] {
			t.Fatalf("improvement sequence not strictly decreasing: %v", seen)
		}
	}
	if seen[len(seen)-1] != res.Best.Fitness {
		t.Fatalf("last reported best %d != result best %d", seen[len(seen)-1], res.Best.Fitness)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	pop, counter := newTestPopulation(t, 20, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, DriverConfig{EnergyThreshold: -1000, MaxEvaluations: counter.Total() + 100000}, pop, counter, nil)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestRunRejectsMissingBudget(t *testing.T) {
	pop, counter := newTestPopulation(t, 10, 9)
	if _, err := Run(context.Background(), DriverConfig{EnergyThreshold: -5}, pop, counter, nil); err == nil {
		t.Fatal("expected error for non-positive evaluation budget")
	}
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	runOnce := func() Result {
		var counter fold.Counter
		pop, err := NewPopulation(Config{
			Size:          15,
			MutationProb:  0.05,
			CrossoverProb: 0.85,
		}, mustSeq(t, benchSequence), rand.New(rand.NewSource(99)), &counter)
		if err != nil {
			t.Fatalf("new population: %v", err)
		}
		res, err := Run(context.Background(), DriverConfig{EnergyThreshold: -1000, MaxEvaluations: 5000}, pop, &counter, nil)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return res
	}

	a := runOnce()
	b := runOnce()
	if a.Best.Fitness != b.Best.Fitness || a.Generations != b.Generations || a.Evaluations != b.Evaluations {
		t.Fatalf("runs with identical seeds diverged: %+v vs %+v", a, b)
	}
	if a.Best.EncodingString() != b.Best.EncodingString() {
		t.Fatal("best encodings diverged for identical seeds")
	}
}
