package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("dog not found")
	ErrOwnerNotFound = errors.New("owner not found")
	ErrInUse         = errors.New("dog is still referenced")
)

// OwnerSource resuelve owners sin importar el módulo owners.
type OwnerSource interface {
	Info(ctx context.Context, id string) (OwnerInfo, error)
}

type Service struct {
	repo   Repository
	owners OwnerSource
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerSource) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
	}
}

type CreateInput struct {
	OwnerID   string
	Name      string
	Age       *int
	BirthDate *time.Time
	Gender    string
	Size      string
	Breed     string
	Instagram string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return Dog{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Dog{}, ErrInvalidInput
	}

	gender, ok := ParseGender(strings.TrimSpace(in.Gender))
	if !ok {
		return Dog{}, ErrInvalidInput
	}
	size, ok := ParseSize(strings.TrimSpace(in.Size))
	if !ok {
		return Dog{}, ErrInvalidInput
	}

	if _, err := s.owners.Info(ctx, in.OwnerID); err != nil {
		return Dog{}, ErrOwnerNotFound
	}

	breed := strings.TrimSpace(in.Breed)
	if breed == "" {
		breed = DefaultBreed
	}

	now := s.now()
	d := Dog{
		ID:        uuid.NewString(),
		OwnerID:   strings.TrimSpace(in.OwnerID),
		Name:      strings.TrimSpace(in.Name),
		Age:       in.Age,
		BirthDate: in.BirthDate,
		Gender:    gender,
		Size:      size,
		Breed:     breed,
		Instagram: strings.TrimSpace(in.Instagram),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Age       *int
	BirthDate *time.Time
	Gender    *string
	Size      *string
	Breed     *string
	Instagram *string
	Active    *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		d.Age = in.Age
	}
	if in.BirthDate != nil {
		d.BirthDate = in.BirthDate
	}
	if in.Gender != nil {
		gender, ok := ParseGender(strings.TrimSpace(*in.Gender))
		if !ok {
			return Dog{}, ErrInvalidInput
		}
		d.Gender = gender
	}
	if in.Size != nil {
		size, ok := ParseSize(strings.TrimSpace(*in.Size))
		if !ok {
			return Dog{}, ErrInvalidInput
		}
		d.Size = size
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
		if d.Breed == "" {
			d.Breed = DefaultBreed
		}
	}
	if in.Instagram != nil {
		d.Instagram = strings.TrimSpace(*in.Instagram)
	}
	if in.Active != nil {
		d.Active = *in.Active
	}

	if d.Name == "" {
		return Dog{}, ErrInvalidInput
	}
	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Dog, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Dog, error) {
	return s.repo.List(ctx, ListFilter{OwnerID: ownerID, IncludeInactive: true})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// OwnerInfoOf devuelve los datos del owner del dog (para el detalle compuesto).
func (s *Service) OwnerInfoOf(ctx context.Context, d Dog) (OwnerInfo, error) {
	return s.owners.Info(ctx, d.OwnerID)
}
