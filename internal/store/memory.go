package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory keeps reports in process. It is the default when no database is configured.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]BattleReport
}

func NewMemory() *Memory {
	return &Memory{reports: make(map[string]BattleReport)}
}

func (m *Memory) Create(_ context.Context, report *BattleReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.reports[report.ID]; exists {
		return fmt.Errorf("battle report %s already exists", report.ID)
	}
	stored := *report
	stored.Log = slices.Clone(report.Log)
	m.reports[report.ID] = stored
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*BattleReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	report.Log = slices.Clone(report.Log)
	return &report, nil
}
