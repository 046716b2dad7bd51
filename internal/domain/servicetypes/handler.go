package servicetypes

import (
	"encoding/json"
	"errors"
	"net/http"

	"dog-boarding-api/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

var validate = httpjson.NewValidator()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/service-types", func(tr chi.Router) {
		tr.Post("/", createServiceTypeHandler(svc))
		tr.Get("/", listServiceTypesHandler(svc))
		tr.Get("/{typeID}", getServiceTypeHandler(svc))
		tr.Put("/{typeID}", updateServiceTypeHandler(svc, true))
		tr.Patch("/{typeID}", updateServiceTypeHandler(svc, false))
		tr.Delete("/{typeID}", deleteServiceTypeHandler(svc))
	})
}

type createServiceTypeRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BasePrice   *float64 `json:"base_price" validate:"omitempty,min=0"`
}

type updateServiceTypeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	BasePrice   *float64 `json:"base_price"`
}

type serviceTypeResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BasePrice   *float64 `json:"base_price,omitempty"`
}

func toServiceTypeResponse(st ServiceType) serviceTypeResponse {
	return serviceTypeResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		BasePrice:   st.BasePrice,
	}
}

func createServiceTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createServiceTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		st, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			BasePrice:   req.BasePrice,
		})
		if err != nil {
			writeServiceTypeError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toServiceTypeResponse(st))
	}
}

func listServiceTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]serviceTypeResponse, 0, len(items))
		for _, st := range items {
			out = append(out, toServiceTypeResponse(st))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getServiceTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetByID(r.Context(), chi.URLParam(r, "typeID"))
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "ServiceType not found")
			return
		}
		httpjson.Write(w, http.StatusOK, toServiceTypeResponse(st))
	}
}

func updateServiceTypeHandler(svc *Service, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateServiceTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if full && req.Name == nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"name": "required"})
			return
		}

		st, err := svc.Update(r.Context(), chi.URLParam(r, "typeID"), UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			BasePrice:   req.BasePrice,
		})
		if err != nil {
			writeServiceTypeError(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, toServiceTypeResponse(st))
	}
}

func deleteServiceTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "typeID")); err != nil {
			writeServiceTypeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceTypeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNameInUse):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"name": "duplicate"})
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "ServiceType not found")
	case errors.Is(err, ErrInUse):
		httpjson.WriteError(w, http.StatusBadRequest, "ServiceType is still referenced by services")
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
