package onboarding

import (
	"context"
	"time"

	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/domain/healths"
	"dog-boarding-api/internal/domain/owners"
)

// TxRunner ejecuta fn dentro de una transacción del store:
// si fn devuelve error, nada de lo escrito adentro queda visible.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Request es el alta completa de un cliente nuevo: owner + dog + health.
type Request struct {
	Name     string
	Phone    string
	Email    string
	CPF      string
	Address  string
	District string

	Dog    DogRequest
	Health HealthRequest
}

type DogRequest struct {
	Name      string
	Age       *int
	BirthDate *time.Time
	Gender    string
	Size      string
	Breed     string
	Instagram string
}

type HealthRequest struct {
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

// Result es la representación anidada que devuelve el alta.
// Health puede ser nil si la relectura no la encuentra (se tolera, no falla).
type Result struct {
	Owner  owners.Owner
	Dog    dogs.Dog
	Health *healths.Health
}

type Service struct {
	tx      TxRunner
	owners  *owners.Service
	dogs    *dogs.Service
	healths *healths.Service
}

func NewService(tx TxRunner, o *owners.Service, d *dogs.Service, h *healths.Service) *Service {
	return &Service{
		tx:      tx,
		owners:  o,
		dogs:    d,
		healths: h,
	}
}

// Onboard crea owner, dog y health como una unidad atómica.
// Cualquier fallo (cpf duplicado incluido) revierte todo: el caller
// nunca observa un trío parcialmente creado.
func (s *Service) Onboard(ctx context.Context, req Request) (Result, error) {
	var res Result

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.owners.Create(ctx, owners.CreateInput{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			CPF:      req.CPF,
			Address:  req.Address,
			District: req.District,
		})
		if err != nil {
			return err
		}

		d, err := s.dogs.Create(ctx, dogs.CreateInput{
			OwnerID:   o.ID,
			Name:      req.Dog.Name,
			Age:       req.Dog.Age,
			BirthDate: req.Dog.BirthDate,
			Gender:    req.Dog.Gender,
			Size:      req.Dog.Size,
			Breed:     req.Dog.Breed,
			Instagram: req.Dog.Instagram,
		})
		if err != nil {
			return err
		}

		if _, err := s.healths.Create(ctx, healths.CreateInput{
			DogID:                  d.ID,
			HasVet:                 req.Health.HasVet,
			VetName:                req.Health.VetName,
			VetPhone:               req.Health.VetPhone,
			Castrated:              req.Health.Castrated,
			InHeat:                 req.Health.InHeat,
			ChronicDisease:         req.Health.ChronicDisease,
			DiseaseDescription:     req.Health.DiseaseDescription,
			Allergies:              req.Health.Allergies,
			SpecialRecommendations: req.Health.SpecialRecommendations,
		}); err != nil {
			return err
		}

		res.Owner = o
		res.Dog = d

		// Relectura fresca de la health; su ausencia no es error.
		if h, err := s.healths.GetByDog(ctx, d.ID); err == nil {
			res.Health = &h
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return res, nil
}
