package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("owner not found")
	ErrCPFInUse     = errors.New("cpf already in use")
	ErrInUse        = errors.New("owner is still referenced")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name     string
	Phone    string
	Email    string
	CPF      string
	Address  string
	District string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Owner{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Phone) == "" {
		return Owner{}, ErrInvalidInput
	}

	o := Owner{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CPF:       strings.TrimSpace(in.CPF),
		Address:   strings.TrimSpace(in.Address),
		District:  strings.TrimSpace(in.District),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Phone    *string
	Email    *string
	CPF      *string
	Address  *string
	District *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Owner, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Name != nil {
		o.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		o.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		o.Email = strings.TrimSpace(*in.Email)
	}
	if in.CPF != nil {
		o.CPF = strings.TrimSpace(*in.CPF)
	}
	if in.Address != nil {
		o.Address = strings.TrimSpace(*in.Address)
	}
	if in.District != nil {
		o.District = strings.TrimSpace(*in.District)
	}

	if o.Name == "" || o.Phone == "" {
		return Owner{}, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
