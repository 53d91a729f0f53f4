package storage

import (
	"context"

	"hpfold/internal/model"
)

// Store defines persistence operations for GA runs and their best
// foldings.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveBestFold(ctx context.Context, runID string, record model.FoldRecord) error
	GetBestFold(ctx context.Context, runID string) (model.FoldRecord, bool, error)
	SaveEnergyHistory(ctx context.Context, runID string, history []int) error
	GetEnergyHistory(ctx context.Context, runID string) ([]int, bool, error)
}
