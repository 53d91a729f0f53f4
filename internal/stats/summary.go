package stats

import "math"

// Summary aggregates repeated-run metrics: success rate against the
// optimal energy plus mean/std/min/max of the per-run columns.
type Summary struct {
	Runs        int
	SuccessRuns int
	SuccessRate float64

	MeanBestEnergy float64
	StdBestEnergy  float64

	MeanEvalToBest float64
	StdEvalToBest  float64
	MinEvalToBest  int64
	MaxEvalToBest  int64

	MeanGenerationsToBest float64
	StdGenerationsToBest  float64

	MeanBirthGeneration float64
	StdBirthGeneration  float64
}

func Summarize(metrics []RunMetrics, optimalEnergy int) Summary {
	s := Summary{Runs: len(metrics)}
	if len(metrics) == 0 {
		return s
	}

	energies := make([]float64, 0, len(metrics))
	evals := make([]float64, 0, len(metrics))
	generations := make([]float64, 0, len(metrics))
	births := make([]float64, 0, len(metrics))
	s.MinEvalToBest = metrics[0].EvalToBest
	s.MaxEvalToBest = metrics[0].EvalToBest
	for _, m := range metrics {
		energies = append(energies, float64(m.BestEnergy))
		evals = append(evals, float64(m.EvalToBest))
		generations = append(generations, float64(m.GenerationsToBest))
		births = append(births, float64(m.BirthGenerationOfBest))
		if m.BestEnergy <= optimalEnergy {
			s.SuccessRuns++
		}
		if m.EvalToBest < s.MinEvalToBest {
			s.MinEvalToBest = m.EvalToBest
		}
		if m.EvalToBest > s.MaxEvalToBest {
			s.MaxEvalToBest = m.EvalToBest
		}
	}

	s.SuccessRate = float64(s.SuccessRuns) / float64(len(metrics))
	s.MeanBestEnergy, s.StdBestEnergy = Mean(energies), Std(energies)
	s.MeanEvalToBest, s.StdEvalToBest = Mean(evals), Std(evals)
	s.MeanGenerationsToBest, s.StdGenerationsToBest = Mean(generations), Std(generations)
	s.MeanBirthGeneration, s.StdBirthGeneration = Mean(births), Std(births)
	return s
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// Std is the sample standard deviation; it is zero for fewer than two
// samples.
func Std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
