package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/domain/healths"
	"dog-boarding-api/internal/domain/owners"
	"dog-boarding-api/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

var validate = httpjson.NewValidator()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/onboarding", onboardHandler(svc))
}

type onboardRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	CPF      string `json:"cpf" validate:"omitempty,max=14"`
	Address  string `json:"address"`
	District string `json:"district"`

	Dog    onboardDogRequest    `json:"dog" validate:"required"`
	Health onboardHealthRequest `json:"health"`
}

type onboardDogRequest struct {
	Name      string `json:"name" validate:"required"`
	Age       *int   `json:"age" validate:"omitempty,min=0"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	Size      string `json:"size" validate:"required,oneof=small medium large"`
	Breed     string `json:"breed"`
	Instagram string `json:"instagram"`
}

type onboardHealthRequest struct {
	HasVet   bool   `json:"has_vet"`
	VetName  string `json:"vet_name"`
	VetPhone string `json:"vet_phone"`

	Castrated bool `json:"castrated"`
	InHeat    bool `json:"in_heat"`

	ChronicDisease     bool   `json:"chronic_disease"`
	DiseaseDescription string `json:"disease_description"`

	Allergies              string `json:"allergies"`
	SpecialRecommendations string `json:"special_recommendations"`
}

type onboardResponse struct {
	owners.Response
	Dog    dogs.Response     `json:"dog"`
	Health *healths.Response `json:"health"`
}

func onboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req onboardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.Dog.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.Dog.BirthDate)
			if err != nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
					"dog.birth_date": "must be YYYY-MM-DD",
				})
				return
			}
			bd = &t
		}

		res, err := svc.Onboard(r.Context(), Request{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			CPF:      req.CPF,
			Address:  req.Address,
			District: req.District,
			Dog: DogRequest{
				Name:      req.Dog.Name,
				Age:       req.Dog.Age,
				BirthDate: bd,
				Gender:    req.Dog.Gender,
				Size:      req.Dog.Size,
				Breed:     req.Dog.Breed,
				Instagram: req.Dog.Instagram,
			},
			Health: HealthRequest{
				HasVet:                 req.Health.HasVet,
				VetName:                req.Health.VetName,
				VetPhone:               req.Health.VetPhone,
				Castrated:              req.Health.Castrated,
				InHeat:                 req.Health.InHeat,
				ChronicDisease:         req.Health.ChronicDisease,
				DiseaseDescription:     req.Health.DiseaseDescription,
				Allergies:              req.Health.Allergies,
				SpecialRecommendations: req.Health.SpecialRecommendations,
			},
		})
		if err != nil {
			writeOnboardError(w, err)
			return
		}

		resp := onboardResponse{
			Response: owners.ToResponse(res.Owner),
			Dog:      dogs.ToResponse(res.Dog),
		}
		if res.Health != nil {
			h := healths.ToResponse(*res.Health)
			resp.Health = &h
		}

		httpjson.Write(w, http.StatusCreated, resp)
	}
}

func writeOnboardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, owners.ErrCPFInUse):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"cpf": "duplicate"})
	case errors.Is(err, owners.ErrInvalidInput), errors.Is(err, dogs.ErrInvalidInput),
		errors.Is(err, healths.ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
