package servicerecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("service record not found")
	ErrDogNotFound         = errors.New("dog not found")
	ErrStayNotFound        = errors.New("stay not found")
	ErrServiceTypeNotFound = errors.New("service type not found")
	// ErrEventTime: ni ambos ni ninguno de {performed_at, day}.
	ErrEventTime = errors.New("exactly one of performed_at and day must be set")
	// ErrStayMismatch: el stay referenciado pertenece a otro dog.
	ErrStayMismatch = errors.New("stay belongs to a different dog")
)

// Ports chicos para no importar los módulos dogs/stays/servicetypes.
type DogDirectory interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

type StayDirectory interface {
	DogOf(ctx context.Context, stayID string) (string, error)
}

type ServiceCatalog interface {
	BasePriceOf(ctx context.Context, serviceTypeID string) (*float64, error)
}

type Service struct {
	repo    Repository
	dogs    DogDirectory
	stays   StayDirectory
	catalog ServiceCatalog
	now     func() time.Time
}

func NewService(repo Repository, dogs DogDirectory, stays StayDirectory, catalog ServiceCatalog) *Service {
	return &Service{
		repo:    repo,
		dogs:    dogs,
		stays:   stays,
		catalog: catalog,
		now:     time.Now,
	}
}

type CreateInput struct {
	DogID         string
	ServiceTypeID string
	StayID        *string

	PerformedAt *time.Time
	Day         *time.Time

	Price    *float64
	Currency string

	Metadata map[string]string
	Notes    string
}

// Create aplica los pasos de pre-guardado en forma explícita:
// owner derivado del dog, precio defaulteado del tipo de servicio,
// y los invariantes de tiempo y de stay/dog chequeados antes de persistir.
func (s *Service) Create(ctx context.Context, in CreateInput) (ServiceRecord, error) {
	dogID := strings.TrimSpace(in.DogID)
	if dogID == "" {
		return ServiceRecord{}, ErrInvalidInput
	}
	typeID := strings.TrimSpace(in.ServiceTypeID)
	if typeID == "" {
		return ServiceRecord{}, ErrInvalidInput
	}

	if err := validateEventTime(in.PerformedAt, in.Day); err != nil {
		return ServiceRecord{}, err
	}

	// Owner siempre derivado del dog, nunca provisto por el caller.
	ownerID, err := s.dogs.OwnerOf(ctx, dogID)
	if err != nil {
		return ServiceRecord{}, ErrDogNotFound
	}

	var stayID *string
	if in.StayID != nil && strings.TrimSpace(*in.StayID) != "" {
		id := strings.TrimSpace(*in.StayID)
		stayDog, err := s.stays.DogOf(ctx, id)
		if err != nil {
			return ServiceRecord{}, ErrStayNotFound
		}
		if stayDog != dogID {
			return ServiceRecord{}, ErrStayMismatch
		}
		stayID = &id
	}

	// Precio: explícito, o precio base del tipo de servicio, o cero.
	price := 0.0
	if in.Price != nil {
		if *in.Price < 0 {
			return ServiceRecord{}, ErrInvalidInput
		}
		price = *in.Price
	} else {
		base, err := s.catalog.BasePriceOf(ctx, typeID)
		if err != nil {
			return ServiceRecord{}, ErrServiceTypeNotFound
		}
		if base != nil {
			price = *base
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	sr := ServiceRecord{
		ID:            uuid.NewString(),
		DogID:         dogID,
		OwnerID:       ownerID,
		ServiceTypeID: typeID,
		StayID:        stayID,
		PerformedAt:   in.PerformedAt,
		Day:           in.Day,
		Price:         price,
		Currency:      currency,
		Metadata:      in.Metadata,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, sr); err != nil {
		return ServiceRecord{}, err
	}
	return sr, nil
}

// OptionalTime distingue "no enviado" (Present=false) de "enviado null"
// (Present=true, Value=nil), para poder mover un record de performed_at a day.
type OptionalTime struct {
	Present bool
	Value   *time.Time
}

type OptionalString struct {
	Present bool
	Value   *string
}

type UpdateInput struct {
	StayID OptionalString

	PerformedAt OptionalTime
	Day         OptionalTime

	Price    *float64
	Currency *string

	Metadata map[string]string
	Notes    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (ServiceRecord, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ServiceRecord{}, err
	}

	if in.PerformedAt.Present {
		sr.PerformedAt = in.PerformedAt.Value
	}
	if in.Day.Present {
		sr.Day = in.Day.Value
	}
	// El invariante vale también después de updates.
	if err := validateEventTime(sr.PerformedAt, sr.Day); err != nil {
		return ServiceRecord{}, err
	}

	if in.StayID.Present {
		if in.StayID.Value == nil || strings.TrimSpace(*in.StayID.Value) == "" {
			sr.StayID = nil
		} else {
			stayID := strings.TrimSpace(*in.StayID.Value)
			stayDog, err := s.stays.DogOf(ctx, stayID)
			if err != nil {
				return ServiceRecord{}, ErrStayNotFound
			}
			if stayDog != sr.DogID {
				return ServiceRecord{}, ErrStayMismatch
			}
			sr.StayID = &stayID
		}
	}

	if in.Price != nil {
		if *in.Price < 0 {
			return ServiceRecord{}, ErrInvalidInput
		}
		sr.Price = *in.Price
	}
	if in.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if c == "" {
			c = DefaultCurrency
		}
		sr.Currency = c
	}
	if in.Metadata != nil {
		sr.Metadata = in.Metadata
	}
	if in.Notes != nil {
		sr.Notes = strings.TrimSpace(*in.Notes)
	}

	// DogID, OwnerID y CreatedAt son inmutables: no hay rama que los toque.

	if err := s.repo.Update(ctx, sr); err != nil {
		return ServiceRecord{}, err
	}
	return sr, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ServiceRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ServiceRecord{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]ServiceRecord, error) {
	if !validOrder(filter.OrderBy, "performed_at", "day", "created_at", "price") {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListByDog(ctx context.Context, dogID string) ([]ServiceRecord, error) {
	return s.repo.List(ctx, ListFilter{DogID: dogID})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validateEventTime(performedAt, day *time.Time) error {
	if (performedAt == nil) == (day == nil) {
		return ErrEventTime
	}
	return nil
}

func validOrder(orderBy string, allowed ...string) bool {
	orderBy = strings.TrimPrefix(strings.TrimSpace(orderBy), "-")
	if orderBy == "" {
		return true
	}
	for _, a := range allowed {
		if orderBy == a {
			return true
		}
	}
	return false
}
