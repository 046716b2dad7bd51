package memory

import (
	"context"
	"errors"
	"sort"

	"dog-boarding-api/internal/domain/dogs"
)

type dogsRepo struct {
	s *Store
}

func (r *dogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if d.ID == "" {
		return errors.New("dog id required")
	}
	if _, exists := r.s.dogs[d.ID]; exists {
		return errors.New("dog already exists")
	}
	if _, ok := r.s.owners[d.OwnerID]; !ok {
		return dogs.ErrOwnerNotFound
	}

	r.s.dogs[d.ID] = d
	return nil
}

func (r *dogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.dogs[d.ID]; !exists {
		return dogs.ErrNotFound
	}

	r.s.dogs[d.ID] = d
	return nil
}

func (r *dogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.dogs[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogsRepo) List(ctx context.Context, filter dogs.ListFilter) ([]dogs.Dog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]dogs.Dog, 0)
	for _, d := range r.s.dogs {
		if filter.OwnerID != "" && d.OwnerID != filter.OwnerID {
			continue
		}
		if !filter.IncludeInactive && !d.Active {
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *dogsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.dogs[id]; !exists {
		return dogs.ErrNotFound
	}

	// protect: stays y services preservan historial
	for _, st := range r.s.stays {
		if st.DogID == id {
			return dogs.ErrInUse
		}
	}
	for _, sr := range r.s.records {
		if sr.DogID == id {
			return dogs.ErrInUse
		}
	}

	// cascade: la health vive lo que vive el dog
	for hid, h := range r.s.healths {
		if h.DogID == id {
			delete(r.s.healths, hid)
		}
	}

	delete(r.s.dogs, id)
	return nil
}
