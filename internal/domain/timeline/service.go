package timeline

import (
	"context"
	"errors"
	"sort"
	"strings"

	"dog-boarding-api/internal/domain/servicerecords"
	"dog-boarding-api/internal/domain/stays"
)

var ErrDogNotFound = errors.New("dog not found")

type DogChecker interface {
	Exists(ctx context.Context, dogID string) (bool, error)
}

type StaysSource interface {
	ListByDog(ctx context.Context, dogID string) ([]stays.Stay, error)
}

type ServicesSource interface {
	ListByDog(ctx context.Context, dogID string) ([]servicerecords.ServiceRecord, error)
}

type ServiceTypeNames interface {
	NameOf(ctx context.Context, serviceTypeID string) (string, error)
}

// Service arma el feed cronológico de un dog mezclando stays y services.
// Lectura pura: no muta nada y es re-derivable de las filas persistidas.
type Service struct {
	dogs     DogChecker
	stays    StaysSource
	services ServicesSource
	names    ServiceTypeNames
}

func NewService(dogs DogChecker, st StaysSource, sv ServicesSource, names ServiceTypeNames) *Service {
	return &Service{
		dogs:     dogs,
		stays:    st,
		services: sv,
		names:    names,
	}
}

// ForDog devuelve los eventos del dog, más recientes primero.
func (s *Service) ForDog(ctx context.Context, dogID string) ([]Entry, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return nil, ErrDogNotFound
	}

	ok, err := s.dogs.Exists(ctx, dogID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDogNotFound
	}

	stayItems, err := s.stays.ListByDog(ctx, dogID)
	if err != nil {
		return nil, err
	}
	serviceItems, err := s.services.ListByDog(ctx, dogID)
	if err != nil {
		return nil, err
	}

	// Los nombres de tipo se resuelven una vez por tipo, no por record.
	typeNames := map[string]string{}
	for _, sr := range serviceItems {
		if _, seen := typeNames[sr.ServiceTypeID]; seen {
			continue
		}
		name, err := s.names.NameOf(ctx, sr.ServiceTypeID)
		if err != nil {
			name = ""
		}
		typeNames[sr.ServiceTypeID] = name
	}

	return Merge(stayItems, serviceItems, typeNames), nil
}

// Merge concatena ambos orígenes y ordena descendente por la clave
// temporal propia de cada entrada (con created_at como fallback).
func Merge(stayItems []stays.Stay, serviceItems []servicerecords.ServiceRecord, typeNames map[string]string) []Entry {
	out := make([]Entry, 0, len(stayItems)+len(serviceItems))

	for _, st := range stayItems {
		out = append(out, stayEntry(st))
	}
	for _, sr := range serviceItems {
		out = append(out, serviceEntry(sr, typeNames[sr.ServiceTypeID]))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].When.After(out[j].When)
	})

	return out
}

func stayEntry(st stays.Stay) Entry {
	when := st.CreatedAt
	if st.CheckIn != nil {
		when = *st.CheckIn
	}

	total := st.PriceTotal
	return Entry{
		Kind:       KindStay,
		When:       when,
		StayID:     st.ID,
		CheckIn:    st.CheckIn,
		CheckOut:   st.CheckOut,
		PriceTotal: &total,
		Notes:      st.Notes,
	}
}

func serviceEntry(sr servicerecords.ServiceRecord, typeName string) Entry {
	price := sr.Price
	created := sr.CreatedAt
	return Entry{
		Kind:        KindService,
		When:        sr.SortTimestamp(),
		ServiceID:   sr.ID,
		ServiceType: typeName,
		PerformedAt: sr.PerformedAt,
		Day:         sr.Day,
		Price:       &price,
		Currency:    sr.Currency,
		Metadata:    sr.Metadata,
		CreatedAt:   &created,
		Notes:       sr.Notes,
	}
}
