package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"dog-boarding-api/internal/domain/servicerecords"
)

type serviceRecordsRepo struct {
	s *Store
}

func (r *serviceRecordsRepo) Create(ctx context.Context, sr servicerecords.ServiceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if sr.ID == "" {
		return errors.New("service record id required")
	}
	if _, exists := r.s.records[sr.ID]; exists {
		return errors.New("service record already exists")
	}
	if _, ok := r.s.dogs[sr.DogID]; !ok {
		return servicerecords.ErrDogNotFound
	}
	if _, ok := r.s.serviceTypes[sr.ServiceTypeID]; !ok {
		return servicerecords.ErrServiceTypeNotFound
	}
	if sr.StayID != nil {
		if _, ok := r.s.stays[*sr.StayID]; !ok {
			return servicerecords.ErrStayNotFound
		}
	}

	r.s.records[sr.ID] = sr
	return nil
}

func (r *serviceRecordsRepo) Update(ctx context.Context, sr servicerecords.ServiceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.records[sr.ID]; !exists {
		return servicerecords.ErrNotFound
	}
	if sr.StayID != nil {
		if _, ok := r.s.stays[*sr.StayID]; !ok {
			return servicerecords.ErrStayNotFound
		}
	}

	r.s.records[sr.ID] = sr
	return nil
}

func (r *serviceRecordsRepo) GetByID(ctx context.Context, id string) (servicerecords.ServiceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sr, ok := r.s.records[id]
	if !ok {
		return servicerecords.ServiceRecord{}, servicerecords.ErrNotFound
	}
	return sr, nil
}

func (r *serviceRecordsRepo) List(ctx context.Context, filter servicerecords.ListFilter) ([]servicerecords.ServiceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]servicerecords.ServiceRecord, 0)
	for _, sr := range r.s.records {
		if filter.DogID != "" && sr.DogID != filter.DogID {
			continue
		}
		if filter.OwnerID != "" && sr.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ServiceTypeID != "" && sr.ServiceTypeID != filter.ServiceTypeID {
			continue
		}
		if filter.Day != nil {
			if sr.Day == nil || !sr.Day.Equal(*filter.Day) {
				continue
			}
		}
		if q := strings.TrimSpace(filter.Query); q != "" && !r.matchesQuery(sr, q) {
			continue
		}
		out = append(out, sr)
	}

	sortRecords(out, filter.OrderBy)

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *serviceRecordsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.records[id]; !exists {
		return servicerecords.ErrNotFound
	}
	delete(r.s.records, id)
	return nil
}

func (r *serviceRecordsRepo) SumByStay(ctx context.Context, stayID string) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum float64
	for _, sr := range r.s.records {
		if sr.StayID != nil && *sr.StayID == stayID {
			sum += sr.Price
		}
	}
	return sum, nil
}

// matchesQuery asume lock tomado: busca en nombre del dog,
// nombre del owner y notes, como el ILIKE del repo de Postgres.
func (r *serviceRecordsRepo) matchesQuery(sr servicerecords.ServiceRecord, q string) bool {
	hay := sr.Notes
	if d, ok := r.s.dogs[sr.DogID]; ok {
		hay += " " + d.Name
	}
	if o, ok := r.s.owners[sr.OwnerID]; ok {
		hay += " " + o.Name
	}
	return strings.Contains(strings.ToLower(hay), strings.ToLower(q))
}

func sortRecords(items []servicerecords.ServiceRecord, orderBy string) {
	desc := strings.HasPrefix(orderBy, "-")
	field := strings.TrimPrefix(orderBy, "-")

	less := func(a, b servicerecords.ServiceRecord) bool {
		switch field {
		case "price":
			return a.Price < b.Price
		case "performed_at", "day":
			return a.SortTimestamp().Before(b.SortTimestamp())
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
