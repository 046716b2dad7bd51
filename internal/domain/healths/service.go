package healths

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("health profile not found")
	ErrDogNotFound   = errors.New("dog not found")
	ErrAlreadyExists = errors.New("dog already has a health profile")
)

// DogDirectory resuelve dogs sin importar el módulo dogs.
type DogDirectory interface {
	Exists(ctx context.Context, dogID string) (bool, error)
}

type Service struct {
	repo Repository
	dogs DogDirectory
}

func NewService(repo Repository, dogs DogDirectory) *Service {
	return &Service{repo: repo, dogs: dogs}
}

type CreateInput struct {
	DogID string

	HasVet   bool
	VetName  string
	VetPhone string

	Castrated bool
	InHeat    bool

	ChronicDisease     bool
	DiseaseDescription string

	Allergies              string
	SpecialRecommendations string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Health, error) {
	dogID := strings.TrimSpace(in.DogID)
	if dogID == "" {
		return Health{}, ErrInvalidInput
	}

	ok, err := s.dogs.Exists(ctx, dogID)
	if err != nil {
		return Health{}, err
	}
	if !ok {
		return Health{}, ErrDogNotFound
	}

	h := Health{
		ID:                     uuid.NewString(),
		DogID:                  dogID,
		HasVet:                 in.HasVet,
		VetName:                strings.TrimSpace(in.VetName),
		VetPhone:               strings.TrimSpace(in.VetPhone),
		Castrated:              in.Castrated,
		InHeat:                 in.InHeat,
		ChronicDisease:         in.ChronicDisease,
		DiseaseDescription:     strings.TrimSpace(in.DiseaseDescription),
		Allergies:              strings.TrimSpace(in.Allergies),
		SpecialRecommendations: strings.TrimSpace(in.SpecialRecommendations),
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Health{}, err
	}
	return h, nil
}

type UpdateInput struct {
	HasVet   *bool
	VetName  *string
	VetPhone *string

	Castrated *bool
	InHeat    *bool

	ChronicDisease     *bool
	DiseaseDescription *string

	Allergies              *string
	SpecialRecommendations *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Health, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Health{}, err
	}

	if in.HasVet != nil {
		h.HasVet = *in.HasVet
	}
	if in.VetName != nil {
		h.VetName = strings.TrimSpace(*in.VetName)
	}
	if in.VetPhone != nil {
		h.VetPhone = strings.TrimSpace(*in.VetPhone)
	}
	if in.Castrated != nil {
		h.Castrated = *in.Castrated
	}
	if in.InHeat != nil {
		h.InHeat = *in.InHeat
	}
	if in.ChronicDisease != nil {
		h.ChronicDisease = *in.ChronicDisease
	}
	if in.DiseaseDescription != nil {
		h.DiseaseDescription = strings.TrimSpace(*in.DiseaseDescription)
	}
	if in.Allergies != nil {
		h.Allergies = strings.TrimSpace(*in.Allergies)
	}
	if in.SpecialRecommendations != nil {
		h.SpecialRecommendations = strings.TrimSpace(*in.SpecialRecommendations)
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return Health{}, err
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Health, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Health{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetByDog devuelve la ficha del dog, o ErrNotFound si no tiene.
func (s *Service) GetByDog(ctx context.Context, dogID string) (Health, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return Health{}, ErrNotFound
	}
	return s.repo.GetByDog(ctx, dogID)
}

func (s *Service) List(ctx context.Context) ([]Health, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
