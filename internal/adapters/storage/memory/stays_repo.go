package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"dog-boarding-api/internal/domain/stays"
)

type staysRepo struct {
	s *Store
}

func (r *staysRepo) Create(ctx context.Context, st stays.Stay) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if st.ID == "" {
		return errors.New("stay id required")
	}
	if _, exists := r.s.stays[st.ID]; exists {
		return errors.New("stay already exists")
	}
	if _, ok := r.s.dogs[st.DogID]; !ok {
		return stays.ErrDogNotFound
	}

	r.s.stays[st.ID] = st
	return nil
}

func (r *staysRepo) Update(ctx context.Context, st stays.Stay) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.stays[st.ID]; !exists {
		return stays.ErrNotFound
	}

	r.s.stays[st.ID] = st
	return nil
}

func (r *staysRepo) GetByID(ctx context.Context, id string) (stays.Stay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.stays[id]
	if !ok {
		return stays.Stay{}, stays.ErrNotFound
	}
	return st, nil
}

func (r *staysRepo) List(ctx context.Context, filter stays.ListFilter) ([]stays.Stay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]stays.Stay, 0)
	for _, st := range r.s.stays {
		if filter.DogID != "" && st.DogID != filter.DogID {
			continue
		}
		if filter.OwnerID != "" && st.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, st)
	}

	sortStays(out, filter.OrderBy)

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *staysRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.stays[id]; !exists {
		return stays.ErrNotFound
	}

	// set null: los services conservan su historial sin el stay
	for rid, sr := range r.s.records {
		if sr.StayID != nil && *sr.StayID == id {
			sr.StayID = nil
			r.s.records[rid] = sr
		}
	}

	delete(r.s.stays, id)
	return nil
}

func sortStays(items []stays.Stay, orderBy string) {
	desc := strings.HasPrefix(orderBy, "-")
	field := strings.TrimPrefix(orderBy, "-")

	key := func(st stays.Stay) time.Time {
		switch field {
		case "check_in":
			if st.CheckIn != nil {
				return *st.CheckIn
			}
			return time.Time{}
		case "check_out":
			if st.CheckOut != nil {
				return *st.CheckOut
			}
			return time.Time{}
		default:
			return st.CreatedAt
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if desc {
			return key(items[i]).After(key(items[j]))
		}
		return key(items[i]).Before(key(items[j]))
	})
}
