package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-vet-reviews/internal/domain/profiles"
)

type profileRepo struct {
	s *Store
}

func (r *profileRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	if _, exists := r.s.profiles[p.UserID]; exists {
		return profiles.ErrAlreadyExists
	}
	p = p.Clone()
	p.UserName = ""
	r.s.profiles[p.UserID] = p
	return nil
}

func (r *profileRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.profiles[p.UserID]
	if !ok {
		return profiles.ErrNotFound
	}
	if cur.Version != p.Version {
		return profiles.ErrVersionConflict
	}
	p = p.Clone()
	p.UserName = ""
	p.Version++
	r.s.profiles[p.UserID] = p
	return nil
}

func (r *profileRepo) GetByUser(ctx context.Context, userID string) (profiles.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *profileRepo) List(ctx context.Context) ([]profiles.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]profiles.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, p.Clone())
	}

	// orden estable por fecha de creación
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
