package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/pdsa-generator/internal/platform"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
)

// Memory is in-process storage for generation runs.
type Memory struct {
	mu   sync.Mutex
	runs []models.Run
}

// NewMemory returns new Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// StartRun creates new unfinished run of target and returns it.
// It returns ErrAlreadyRunning if previous run is not finished yet.
func (m *Memory) StartRun(_ context.Context, target string) (*models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if last := m.lastRun(target); last != nil && last.FinishedAt == nil && last.IsSuccess == nil {
		return nil, fmt.Errorf("can't add run: %w", platform.ErrAlreadyRunning)
	}

	run := models.Run{
		ID:        len(m.runs) + 1,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
	m.runs = append(m.runs, run)

	return &run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (m *Memory) FinishRun(_ context.Context, run *models.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.ID < 1 || run.ID > len(m.runs) {
		return fmt.Errorf("can't update run: unknown run %d", run.ID)
	}

	stored := *run
	stored.Target = m.runs[run.ID-1].Target
	stored.CreatedAt = m.runs[run.ID-1].CreatedAt
	m.runs[run.ID-1] = stored

	return nil
}

// LastRun returns latest run of target. It returns nil if target has no runs.
func (m *Memory) LastRun(_ context.Context, target string) (*models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	last := m.lastRun(target)
	if last == nil {
		return nil, nil
	}
	run := *last

	return &run, nil
}

func (m *Memory) lastRun(target string) *models.Run {
	for ix := len(m.runs) - 1; ix >= 0; ix-- {
		if m.runs[ix].Target == target {
			return &m.runs[ix]
		}
	}
	return nil
}
