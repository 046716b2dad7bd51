package memory

import (
	"context"
	"errors"
	"sort"

	"dog-boarding-api/internal/domain/owners"
)

type ownersRepo struct {
	s *Store
}

func (r *ownersRepo) Create(ctx context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if o.ID == "" {
		return errors.New("owner id required")
	}
	if _, exists := r.s.owners[o.ID]; exists {
		return errors.New("owner already exists")
	}
	if r.cpfTaken(o.CPF, o.ID) {
		return owners.ErrCPFInUse
	}

	r.s.owners[o.ID] = o
	return nil
}

func (r *ownersRepo) Update(ctx context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.owners[o.ID]; !exists {
		return owners.ErrNotFound
	}
	if r.cpfTaken(o.CPF, o.ID) {
		return owners.ErrCPFInUse
	}

	r.s.owners[o.ID] = o
	return nil
}

func (r *ownersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.s.owners))
	for _, o := range r.s.owners {
		out = append(out, o)
	}

	// Orden estable por created_at asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *ownersRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.owners[id]; !exists {
		return owners.ErrNotFound
	}

	// protect: dogs, stays y services bloquean el borrado
	for _, d := range r.s.dogs {
		if d.OwnerID == id {
			return owners.ErrInUse
		}
	}
	for _, st := range r.s.stays {
		if st.OwnerID == id {
			return owners.ErrInUse
		}
	}
	for _, sr := range r.s.records {
		if sr.OwnerID == id {
			return owners.ErrInUse
		}
	}

	delete(r.s.owners, id)
	return nil
}

// cpfTaken asume lock tomado. CPF vacío nunca colisiona.
func (r *ownersRepo) cpfTaken(cpf, selfID string) bool {
	if cpf == "" {
		return false
	}
	for _, other := range r.s.owners {
		if other.ID != selfID && other.CPF == cpf {
			return true
		}
	}
	return false
}
