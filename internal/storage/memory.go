package storage

import (
	"context"
	"sort"
	"sync"

	"hpfold/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	folds       map[string]model.FoldRecord
	history     map[string][]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.folds = make(map[string]model.FoldRecord)
	s.history = make(map[string][]int)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC < runs[j].CreatedAtUTC
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *MemoryStore) SaveBestFold(_ context.Context, runID string, record model.FoldRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Positions = append([]model.LatticePoint(nil), record.Positions...)
	s.folds[runID] = record
	return nil
}

func (s *MemoryStore) GetBestFold(_ context.Context, runID string) (model.FoldRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.folds[runID]
	if !ok {
		return model.FoldRecord{}, false, nil
	}
	record.Positions = append([]model.LatticePoint(nil), record.Positions...)
	return record, true, nil
}

func (s *MemoryStore) SaveEnergyHistory(_ context.Context, runID string, history []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[runID] = append([]int(nil), history...)
	return nil
}

func (s *MemoryStore) GetEnergyHistory(_ context.Context, runID string) ([]int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]int(nil), history...), true, nil
}
