package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// LatticePoint mirrors a fold.Point for persistence and export.
type LatticePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RunRecord describes one GA run: its inputs and its terminal state.
type RunRecord struct {
	VersionedRecord
	ID              string  `json:"id"`
	CreatedAtUTC    string  `json:"created_at_utc"`
	Sequence        string  `json:"sequence"`
	PopulationSize  int     `json:"population_size"`
	MutationProb    float64 `json:"mutation_prob"`
	CrossoverProb   float64 `json:"crossover_prob"`
	TournamentSize  int     `json:"tournament_size"`
	EnergyThreshold int     `json:"energy_threshold"`
	MaxEvaluations  int64   `json:"max_evaluations"`
	Seed            int64   `json:"seed"`

	BestEnergy        int    `json:"best_energy"`
	BestEncoding      string `json:"best_encoding"`
	BestGeneration    int    `json:"best_generation"`
	Evaluations       int64  `json:"evaluations"`
	Generations       int    `json:"generations"`
	EvalsToBest       int64  `json:"evals_to_best"`
	GenerationsToBest int    `json:"generations_to_best"`
	UniqueEncodings   int    `json:"unique_encodings"`
	StopReason        string `json:"stop_reason"`
}

// FoldRecord is the full reporting surface of a folding: encoding,
// energy, lineage depth, and the derived lattice walk.
type FoldRecord struct {
	VersionedRecord
	RunID      string         `json:"run_id"`
	Encoding   string         `json:"encoding"`
	Energy     int            `json:"energy"`
	Generation int            `json:"generation"`
	Positions  []LatticePoint `json:"positions"`
}
