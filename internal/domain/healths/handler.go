package healths

import (
	"encoding/json"
	"errors"
	"net/http"

	"dog-boarding-api/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

var validate = httpjson.NewValidator()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/healths", func(hr chi.Router) {
		hr.Post("/", createHealthHandler(svc))
		hr.Get("/", listHealthsHandler(svc))
		hr.Get("/{healthID}", getHealthHandler(svc))
		hr.Put("/{healthID}", updateHealthHandler(svc))
		hr.Patch("/{healthID}", updateHealthHandler(svc))
		hr.Delete("/{healthID}", deleteHealthHandler(svc))
	})
}

type createHealthRequest struct {
	DogID string `json:"dog_id" validate:"required"`

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

type updateHealthRequest struct {
	HasVet   *bool   `json:"has_vet"`
	VetName  *string `json:"vet_name"`
	VetPhone *string `json:"vet_phone"`

	Castrated *bool `json:"castrated"`
	InHeat    *bool `json:"in_heat"`

	ChronicDisease     *bool   `json:"chronic_disease"`
	DiseaseDescription *string `json:"disease_description"`

	Allergies              *string `json:"allergies"`
	SpecialRecommendations *string `json:"special_recommendations"`
}

// Response es el shape JSON de la ficha; lo usa también onboarding.
type Response struct {
	ID    string `json:"id"`
	DogID string `json:"dog_id"`

	HasVet   bool   `json:"has_vet"`
	VetName  string `json:"vet_name,omitempty"`
	VetPhone string `json:"vet_phone,omitempty"`

	Castrated bool `json:"castrated"`
	InHeat    bool `json:"in_heat"`

	ChronicDisease     bool   `json:"chronic_disease"`
	DiseaseDescription string `json:"disease_description,omitempty"`

	Allergies              string `json:"allergies,omitempty"`
	SpecialRecommendations string `json:"special_recommendations,omitempty"`
}

func ToResponse(h Health) Response {
	return Response{
		ID:                     h.ID,
		DogID:                  h.DogID,
		HasVet:                 h.HasVet,
		VetName:                h.VetName,
		VetPhone:               h.VetPhone,
		Castrated:              h.Castrated,
		InHeat:                 h.InHeat,
		ChronicDisease:         h.ChronicDisease,
		DiseaseDescription:     h.DiseaseDescription,
		Allergies:              h.Allergies,
		SpecialRecommendations: h.SpecialRecommendations,
	}
}

func createHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createHealthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		h, err := svc.Create(r.Context(), CreateInput{
			DogID:                  req.DogID,
			HasVet:                 req.HasVet,
			VetName:                req.VetName,
			VetPhone:               req.VetPhone,
			Castrated:              req.Castrated,
			InHeat:                 req.InHeat,
			ChronicDisease:         req.ChronicDisease,
			DiseaseDescription:     req.DiseaseDescription,
			Allergies:              req.Allergies,
			SpecialRecommendations: req.SpecialRecommendations,
		})
		if err != nil {
			writeHealthError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, ToResponse(h))
	}
}

func listHealthsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]Response, 0, len(items))
		for _, h := range items {
			out = append(out, ToResponse(h))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "healthID"))
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Health not found")
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(h))
	}
}

func updateHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateHealthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		h, err := svc.Update(r.Context(), chi.URLParam(r, "healthID"), UpdateInput{
			HasVet:                 req.HasVet,
			VetName:                req.VetName,
			VetPhone:               req.VetPhone,
			Castrated:              req.Castrated,
			InHeat:                 req.InHeat,
			ChronicDisease:         req.ChronicDisease,
			DiseaseDescription:     req.DiseaseDescription,
			Allergies:              req.Allergies,
			SpecialRecommendations: req.SpecialRecommendations,
		})
		if err != nil {
			writeHealthError(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, ToResponse(h))
	}
}

func deleteHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "healthID")); err != nil {
			writeHealthError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeHealthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Health not found")
	case errors.Is(err, ErrDogNotFound):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"dog_id": "not found"})
	case errors.Is(err, ErrAlreadyExists):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"dog_id": "already has a health profile"})
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
