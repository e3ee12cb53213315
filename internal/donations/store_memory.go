package donations

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kamp-aid/backend/internal/models"
)

// MemoryStore is an in-memory Store used by unit tests. A single lock covers
// the donation insert and the project increment, mirroring the transactional
// Postgres store.
type MemoryStore struct {
	mu        sync.RWMutex
	projects  map[uuid.UUID]*models.Project
	donations []models.Donation
}

// NewMemoryStore creates an empty in-memory donation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[uuid.UUID]*models.Project)}
}

// SeedProject registers a project donations can be recorded against.
func (s *MemoryStore) SeedProject(p *models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.projects[p.ID] = p
}

// Project returns a copy of a seeded project's current state.
func (s *MemoryStore) Project(id uuid.UUID) *models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.projects[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

// Record inserts the donation and increments the project totals under one lock.
func (s *MemoryStore) Record(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[d.ProjectID]
	if !ok {
		return ErrProjectNotFound
	}
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	p.Raised += d.Amount
	p.Donors++
	s.donations = append(s.donations, *d)
	return nil
}

// ListByProject returns donations for a project, newest first.
func (s *MemoryStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []models.Donation
	for _, d := range s.donations {
		if d.ProjectID == projectID {
			list = append(list, d)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// Totals returns the sum of amounts and the donation count across all projects.
func (s *MemoryStore) Totals(_ context.Context) (float64, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum float64
	for _, d := range s.donations {
		sum += d.Amount
	}
	return sum, len(s.donations), nil
}
