package stays

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("stay not found")
	ErrDogNotFound  = errors.New("dog not found")
	// ErrPeriodOrder: check_out anterior a check_in.
	ErrPeriodOrder = errors.New("check_out must not be before check_in")
)

// DogDirectory resuelve dogs sin importar el módulo dogs.
type DogDirectory interface {
	OwnerOf(ctx context.Context, dogID string) (string, error)
}

// ChargesSource suma los precios de los services vinculados a un stay.
// Lo implementa el repositorio de servicerecords.
type ChargesSource interface {
	SumByStay(ctx context.Context, stayID string) (float64, error)
}

type Service struct {
	repo    Repository
	dogs    DogDirectory
	charges ChargesSource
	now     func() time.Time
}

func NewService(repo Repository, dogs DogDirectory, charges ChargesSource) *Service {
	return &Service{
		repo:    repo,
		dogs:    dogs,
		charges: charges,
		now:     time.Now,
	}
}

type CreateInput struct {
	DogID      string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Notes      string
	PriceTotal float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Stay, error) {
	dogID := strings.TrimSpace(in.DogID)
	if dogID == "" {
		return Stay{}, ErrInvalidInput
	}
	if in.PriceTotal < 0 {
		return Stay{}, ErrInvalidInput
	}
	if err := validatePeriod(in.CheckIn, in.CheckOut); err != nil {
		return Stay{}, err
	}

	// Owner snapshoteado desde el dog, nunca provisto por el caller.
	ownerID, err := s.dogs.OwnerOf(ctx, dogID)
	if err != nil {
		return Stay{}, ErrDogNotFound
	}

	st := Stay{
		ID:         uuid.NewString(),
		DogID:      dogID,
		OwnerID:    ownerID,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Notes:      strings.TrimSpace(in.Notes),
		PriceTotal: in.PriceTotal,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return Stay{}, err
	}
	return st, nil
}

type UpdateInput struct {
	CheckIn    *time.Time
	CheckOut   *time.Time
	Notes      *string
	PriceTotal *float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Stay, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Stay{}, err
	}

	if in.CheckIn != nil {
		st.CheckIn = in.CheckIn
	}
	if in.CheckOut != nil {
		st.CheckOut = in.CheckOut
	}
	if in.Notes != nil {
		st.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.PriceTotal != nil {
		if *in.PriceTotal < 0 {
			return Stay{}, ErrInvalidInput
		}
		st.PriceTotal = *in.PriceTotal
	}

	// El invariante se re-chequea sobre el resultado del merge.
	if err := validatePeriod(st.CheckIn, st.CheckOut); err != nil {
		return Stay{}, err
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return Stay{}, err
	}
	return st, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Stay, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Stay{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Stay, error) {
	if !validOrder(filter.OrderBy, "check_in", "check_out", "created_at") {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListByDog(ctx context.Context, dogID string) ([]Stay, error) {
	return s.repo.List(ctx, ListFilter{DogID: dogID})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Total calcula el total exhibido: price_total + suma de services vinculados.
// Derivado puro; se recalcula en cada lectura y nunca se persiste.
func (s *Service) Total(ctx context.Context, st Stay) (float64, error) {
	sum, err := s.charges.SumByStay(ctx, st.ID)
	if err != nil {
		return 0, err
	}
	return st.PriceTotal + sum, nil
}

func validatePeriod(checkIn, checkOut *time.Time) error {
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		return ErrPeriodOrder
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
