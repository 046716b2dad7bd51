package memory

import (
	"context"
	"errors"
	"sort"

	"dog-boarding-api/internal/domain/healths"
)

type healthsRepo struct {
	s *Store
}

func (r *healthsRepo) Create(ctx context.Context, h healths.Health) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if h.ID == "" {
		return errors.New("health id required")
	}
	if _, exists := r.s.healths[h.ID]; exists {
		return errors.New("health already exists")
	}
	if _, ok := r.s.dogs[h.DogID]; !ok {
		return healths.ErrDogNotFound
	}
	for _, other := range r.s.healths {
		if other.DogID == h.DogID {
			return healths.ErrAlreadyExists
		}
	}

	r.s.healths[h.ID] = h
	return nil
}

func (r *healthsRepo) Update(ctx context.Context, h healths.Health) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.healths[h.ID]; !exists {
		return healths.ErrNotFound
	}

	r.s.healths[h.ID] = h
	return nil
}

func (r *healthsRepo) GetByID(ctx context.Context, id string) (healths.Health, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h, ok := r.s.healths[id]
	if !ok {
		return healths.Health{}, healths.ErrNotFound
	}
	return h, nil
}

func (r *healthsRepo) GetByDog(ctx context.Context, dogID string) (healths.Health, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, h := range r.s.healths {
		if h.DogID == dogID {
			return h, nil
		}
	}
	return healths.Health{}, healths.ErrNotFound
}

func (r *healthsRepo) List(ctx context.Context) ([]healths.Health, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]healths.Health, 0, len(r.s.healths))
	for _, h := range r.s.healths {
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *healthsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.healths[id]; !exists {
		return healths.ErrNotFound
	}
	delete(r.s.healths, id)
	return nil
}
