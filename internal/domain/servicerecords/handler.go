package servicerecords

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"dog-boarding-api/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

var validate = httpjson.NewValidator()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/services", func(sr chi.Router) {
		sr.Post("/", createServiceHandler(svc))
		sr.Get("/", listServicesHandler(svc))
		sr.Get("/{serviceID}", getServiceHandler(svc))
		sr.Put("/{serviceID}", updateServiceHandler(svc))
		sr.Patch("/{serviceID}", updateServiceHandler(svc))
		sr.Delete("/{serviceID}", deleteServiceHandler(svc))
	})
}

type createServiceRequest struct {
	DogID         string  `json:"dog_id" validate:"required"`
	ServiceTypeID string  `json:"service_type_id" validate:"required"`
	StayID        *string `json:"stay_id"`

	PerformedAt string `json:"performed_at"` // RFC3339
	Day         string `json:"day"`          // YYYY-MM-DD

	Price    *float64 `json:"price" validate:"omitempty,min=0"`
	Currency string   `json:"currency" validate:"omitempty,len=3"`

	Metadata map[string]string `json:"metadata"`
	Notes    string            `json:"notes"`
}

type serviceResponse struct {
	ID            string  `json:"id"`
	DogID         string  `json:"dog_id"`
	OwnerID       string  `json:"owner_id"`
	ServiceTypeID string  `json:"service_type_id"`
	StayID        *string `json:"stay_id"`

	PerformedAt *time.Time `json:"performed_at,omitempty"`
	Day         *string    `json:"day,omitempty"`

	Price    float64 `json:"price"`
	Currency string  `json:"currency"`

	Metadata map[string]string `json:"metadata,omitempty"`
	Notes    string            `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func toServiceResponse(sr ServiceRecord) serviceResponse {
	var day *string
	if sr.Day != nil {
		s := sr.Day.Format("2006-01-02")
		day = &s
	}
	return serviceResponse{
		ID:            sr.ID,
		DogID:         sr.DogID,
		OwnerID:       sr.OwnerID,
		ServiceTypeID: sr.ServiceTypeID,
		StayID:        sr.StayID,
		PerformedAt:   sr.PerformedAt,
		Day:           day,
		Price:         sr.Price,
		Currency:      sr.Currency,
		Metadata:      sr.Metadata,
		Notes:         sr.Notes,
		CreatedAt:     sr.CreatedAt,
	}
}

func createServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createServiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		var performedAt *time.Time
		if strings.TrimSpace(req.PerformedAt) != "" {
			t, err := time.Parse(time.RFC3339, req.PerformedAt)
			if err != nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"performed_at": "must be RFC3339"})
				return
			}
			performedAt = &t
		}

		var day *time.Time
		if strings.TrimSpace(req.Day) != "" {
			t, err := time.Parse("2006-01-02", req.Day)
			if err != nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"day": "must be YYYY-MM-DD"})
				return
			}
			day = &t
		}

		sr, err := svc.Create(r.Context(), CreateInput{
			DogID:         req.DogID,
			ServiceTypeID: req.ServiceTypeID,
			StayID:        req.StayID,
			PerformedAt:   performedAt,
			Day:           day,
			Price:         req.Price,
			Currency:      req.Currency,
			Metadata:      req.Metadata,
			Notes:         req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toServiceResponse(sr))
	}
}

func listServicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{
			DogID:         strings.TrimSpace(q.Get("dog")),
			OwnerID:       strings.TrimSpace(q.Get("owner")),
			ServiceTypeID: strings.TrimSpace(q.Get("service_type")),
			Query:         strings.TrimSpace(q.Get("q")),
			OrderBy:       strings.TrimSpace(q.Get("ordering")),
		}

		if dayStr := strings.TrimSpace(q.Get("day")); dayStr != "" {
			t, err := time.Parse("2006-01-02", dayStr)
			if err != nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"day": "must be YYYY-MM-DD"})
				return
			}
			filter.Day = &t
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]serviceResponse, 0, len(items))
		for _, sr := range items {
			out = append(out, toServiceResponse(sr))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sr, err := svc.GetByID(r.Context(), chi.URLParam(r, "serviceID"))
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Service not found")
			return
		}
		httpjson.Write(w, http.StatusOK, toServiceResponse(sr))
	}
}

func updateServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Para mover un record de performed_at a day (o viceversa) hay que
		// poder mandar null; decodificamos a map para detectar presencia.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		var in UpdateInput

		var fieldErr map[string]string
		in.PerformedAt, fieldErr = optionalTimestamp(raw, "performed_at", time.RFC3339, "must be RFC3339 or null")
		if fieldErr != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, fieldErr)
			return
		}
		in.Day, fieldErr = optionalTimestamp(raw, "day", "2006-01-02", "must be YYYY-MM-DD or null")
		if fieldErr != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, fieldErr)
			return
		}

		if v, ok := raw["stay_id"]; ok {
			in.StayID.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"stay_id": "must be a string or null"})
					return
				}
				in.StayID.Value = &s
			}
		}

		// Campos simples: re-marshal del map para reutilizar los tags.
		var simple struct {
			Price    *float64          `json:"price"`
			Currency *string           `json:"currency"`
			Metadata map[string]string `json:"metadata"`
			Notes    *string           `json:"notes"`
		}
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &simple); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Price = simple.Price
		in.Currency = simple.Currency
		in.Metadata = simple.Metadata
		in.Notes = simple.Notes

		sr, err := svc.Update(r.Context(), chi.URLParam(r, "serviceID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, toServiceResponse(sr))
	}
}

func deleteServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "serviceID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEventTime):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			"performed_at": "exactly one of performed_at and day must be set",
			"day":          "exactly one of performed_at and day must be set",
		})
	case errors.Is(err, ErrStayMismatch):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"stay_id": "belongs to a different dog"})
	case errors.Is(err, ErrStayNotFound):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"stay_id": "not found"})
	case errors.Is(err, ErrDogNotFound):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"dog_id": "not found"})
	case errors.Is(err, ErrServiceTypeNotFound):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"service_type_id": "not found"})
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Service not found")
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// optionalTimestamp decodifica un campo temporal que puede venir
// ausente, null, o como string con el layout dado.
func optionalTimestamp(raw map[string]json.RawMessage, key, layout, errMsg string) (OptionalTime, map[string]string) {
	v, ok := raw[key]
	if !ok {
		return OptionalTime{}, nil
	}

	out := OptionalTime{Present: true}
	if string(v) == "null" {
		return out, nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return OptionalTime{}, map[string]string{key: errMsg}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return OptionalTime{}, map[string]string{key: errMsg}
	}
	out.Value = &t
	return out, nil
}
