package profiles

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kamp-aid/backend/internal/models"
)

// MemoryStore is an in-memory Store used by unit tests. It keeps users and
// profiles under one lock, so the status mirror behaves like the transactional
// Postgres store.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*models.Profile
	users    map[uuid.UUID]*models.User
}

// NewMemoryStore creates an empty in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[uuid.UUID]*models.Profile),
		users:    make(map[uuid.UUID]*models.User),
	}
}

// SeedUser registers an account the store mirrors status onto.
func (s *MemoryStore) SeedUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
}

// GetUser returns a seeded user, or nil if absent or deleted.
func (s *MemoryStore) GetUser(id uuid.UUID) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

// Create inserts a profile for a user.
func (s *MemoryStore) Create(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SetupStatus == "" {
		p.SetupStatus = string(StatusDetailsPending)
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *MemoryStore) withUser(p *models.Profile) *models.ProfileWithUser {
	pw := models.ProfileWithUser{Profile: *p}
	if u, ok := s.users[p.UserID]; ok {
		pw.User = u.ToPublic()
	}
	return &pw
}

// GetByID returns a profile with its owning user.
func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.ProfileWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.withUser(p), nil
}

// GetByUser returns the profile owned by userID with the given kind.
func (s *MemoryStore) GetByUser(_ context.Context, userID uuid.UUID, kind models.ProfileKind) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.UserID == userID && p.Kind == kind {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List returns all profiles of a kind with their owning users, newest first.
func (s *MemoryStore) List(_ context.Context, kind models.ProfileKind) ([]models.ProfileWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []models.ProfileWithUser
	for _, p := range s.profiles {
		if p.Kind == kind {
			list = append(list, *s.withUser(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// UpdateDetails applies the setup form fields to the profile owned by userID.
func (s *MemoryStore) UpdateDetails(_ context.Context, userID uuid.UUID, kind models.ProfileKind, upd DetailsUpdate) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.UserID == userID && p.Kind == kind {
			if upd.Category != nil {
				p.Category = *upd.Category
			}
			if upd.Description != nil {
				p.Description = *upd.Description
			}
			if upd.Phone != nil {
				p.Phone = *upd.Phone
			}
			if upd.Website != nil {
				p.Website = *upd.Website
			}
			if upd.Interest != nil {
				p.Interest = *upd.Interest
			}
			p.UpdatedAt = time.Now()
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// SetStatus writes the profile status and mirrors it onto the owning user
// under one lock.
func (s *MemoryStore) SetStatus(_ context.Context, id uuid.UUID, status Status, reason *string) (*models.ProfileWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.SetupStatus = string(status)
	if reason != nil {
		p.ActionReason = *reason
	}
	p.UpdatedAt = time.Now()
	if u, ok := s.users[p.UserID]; ok {
		u.SetupStatus = string(status)
		u.AccountStatus = string(status)
		u.UpdatedAt = p.UpdatedAt
	}
	return s.withUser(p), nil
}

// Delete removes the profile and its owning user.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.users, p.UserID)
	delete(s.profiles, id)
	return nil
}

// CountByStatus returns profile counts per status for a kind.
func (s *MemoryStore) CountByStatus(_ context.Context, kind models.ProfileKind) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, p := range s.profiles {
		if p.Kind == kind {
			counts[p.SetupStatus]++
		}
	}
	return counts, nil
}
