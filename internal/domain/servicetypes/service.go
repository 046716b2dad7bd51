package servicetypes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("service type not found")
	ErrNameInUse    = errors.New("service type name already in use")
	ErrInUse        = errors.New("service type is still referenced")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name        string
	Description string
	BasePrice   *float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (ServiceType, error) {
	if strings.TrimSpace(in.Name) == "" {
		return ServiceType{}, ErrInvalidInput
	}
	if in.BasePrice != nil && *in.BasePrice < 0 {
		return ServiceType{}, ErrInvalidInput
	}

	st := ServiceType{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		BasePrice:   in.BasePrice,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return ServiceType{}, err
	}
	return st, nil
}

type UpdateInput struct {
	Name        *string
	Description *string
	BasePrice   *float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (ServiceType, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ServiceType{}, err
	}

	if in.Name != nil {
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		st.Description = strings.TrimSpace(*in.Description)
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return ServiceType{}, ErrInvalidInput
		}
		st.BasePrice = in.BasePrice
	}

	if st.Name == "" {
		return ServiceType{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return ServiceType{}, err
	}
	return st, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ServiceType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ServiceType{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]ServiceType, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
