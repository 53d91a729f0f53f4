package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// runRequest collects everything the run subcommand needs; flag values
// seed it and a JSON config file may override individual fields.
type runRequest struct {
	RunID           string
	Sequence        string
	PopulationSize  int
	MutationProb    float64
	CrossoverProb   float64
	TournamentSize  int
	EnergyThreshold int
	MaxEvaluations  int64
	Seed            int64
	Store           string
	DBPath          string
}

// merge overlays the fields present in other onto the receiver. Zero
// values in other mean "field absent from config".
func (r runRequest) merge(other runRequest) runRequest {
	if other.RunID != "" {
		r.RunID = other.RunID
	}
	if other.Sequence != "" {
		r.Sequence = other.Sequence
	}
	if other.PopulationSize != 0 {
		r.PopulationSize = other.PopulationSize
	}
	if other.MutationProb != 0 {
		r.MutationProb = other.MutationProb
	}
	if other.CrossoverProb != 0 {
		r.CrossoverProb = other.CrossoverProb
	}
	if other.TournamentSize != 0 {
		r.TournamentSize = other.TournamentSize
	}
	if other.EnergyThreshold != thresholdUnset {
		r.EnergyThreshold = other.EnergyThreshold
	}
	if other.MaxEvaluations != 0 {
		r.MaxEvaluations = other.MaxEvaluations
	}
	if other.Seed != 0 {
		r.Seed = other.Seed
	}
	if other.Store != "" {
		r.Store = other.Store
	}
	if other.DBPath != "" {
		r.DBPath = other.DBPath
	}
	return r
}

func loadRunRequest(path string) (runRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return runRequest{}, fmt.Errorf("parse run config %s: %w", path, err)
	}

	req := runRequest{EnergyThreshold: thresholdUnset}
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["sequence"]); ok {
		req.Sequence = v
	}
	if v, ok := asInt(raw["population_size"]); ok {
		req.PopulationSize = v
	}
	if v, ok := asFloat64(raw["mutation_prob"]); ok {
		req.MutationProb = v
	}
	if v, ok := asFloat64(raw["crossover_prob"]); ok {
		req.CrossoverProb = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		req.TournamentSize = v
	}
	if v, ok := asInt(raw["energy_threshold"]); ok {
		req.EnergyThreshold = v
	}
	if v, ok := asInt64(raw["max_evaluations"]); ok {
		req.MaxEvaluations = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asString(raw["store"]); ok {
		req.Store = v
	}
	if v, ok := asString(raw["db_path"]); ok {
		req.DBPath = v
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat64(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func asInt64(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}
