package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"dog-boarding-api/internal/domain/servicetypes"
)

type serviceTypesRepo struct {
	s *Store
}

func (r *serviceTypesRepo) Create(ctx context.Context, st servicetypes.ServiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if st.ID == "" {
		return errors.New("service type id required")
	}
	if _, exists := r.s.serviceTypes[st.ID]; exists {
		return errors.New("service type already exists")
	}
	if r.nameTaken(st.Name, st.ID) {
		return servicetypes.ErrNameInUse
	}

	r.s.serviceTypes[st.ID] = st
	return nil
}

func (r *serviceTypesRepo) Update(ctx context.Context, st servicetypes.ServiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.serviceTypes[st.ID]; !exists {
		return servicetypes.ErrNotFound
	}
	if r.nameTaken(st.Name, st.ID) {
		return servicetypes.ErrNameInUse
	}

	r.s.serviceTypes[st.ID] = st
	return nil
}

func (r *serviceTypesRepo) GetByID(ctx context.Context, id string) (servicetypes.ServiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.serviceTypes[id]
	if !ok {
		return servicetypes.ServiceType{}, servicetypes.ErrNotFound
	}
	return st, nil
}

func (r *serviceTypesRepo) List(ctx context.Context) ([]servicetypes.ServiceType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]servicetypes.ServiceType, 0, len(r.s.serviceTypes))
	for _, st := range r.s.serviceTypes {
		out = append(out, st)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *serviceTypesRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.serviceTypes[id]; !exists {
		return servicetypes.ErrNotFound
	}

	// protect: los services facturados referencian el tipo
	for _, sr := range r.s.records {
		if sr.ServiceTypeID == id {
			return servicetypes.ErrInUse
		}
	}

	delete(r.s.serviceTypes, id)
	return nil
}

// nameTaken asume lock tomado; case-insensitive como el índice del schema.
func (r *serviceTypesRepo) nameTaken(name, selfID string) bool {
	for _, other := range r.s.serviceTypes {
		if other.ID != selfID && strings.EqualFold(other.Name, name) {
			return true
		}
	}
	return false
}
