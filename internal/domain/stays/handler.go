package stays

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
	r.Route("/stays", func(sr chi.Router) {
		sr.Post("/", createStayHandler(svc))
		sr.Get("/", listStaysHandler(svc))
		sr.Get("/{stayID}", getStayHandler(svc))
		sr.Put("/{stayID}", updateStayHandler(svc))
		sr.Patch("/{stayID}", updateStayHandler(svc))
		sr.Delete("/{stayID}", deleteStayHandler(svc))
	})
}

type createStayRequest struct {
	DogID      string  `json:"dog_id" validate:"required"`
	CheckIn    string  `json:"check_in"`  // RFC3339 opcional
	CheckOut   string  `json:"check_out"` // RFC3339 opcional
	Notes      string  `json:"notes"`
	PriceTotal float64 `json:"price_total" validate:"min=0"`
}

type updateStayRequest struct {
	CheckIn    *string  `json:"check_in"`
	CheckOut   *string  `json:"check_out"`
	Notes      *string  `json:"notes"`
	PriceTotal *float64 `json:"price_total"`
}

type stayResponse struct {
	ID         string     `json:"id"`
	DogID      string     `json:"dog_id"`
	OwnerID    string     `json:"owner_id"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	PriceTotal float64    `json:"price_total"`
	Total      float64    `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toStayResponse(st Stay, total float64) stayResponse {
	return stayResponse{
		ID:         st.ID,
		DogID:      st.DogID,
		OwnerID:    st.OwnerID,
		CheckIn:    st.CheckIn,
		CheckOut:   st.CheckOut,
		Notes:      st.Notes,
		PriceTotal: st.PriceTotal,
		Total:      total,
		CreatedAt:  st.CreatedAt,
	}
}

func createStayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		checkIn, ok := parseTimestamp(req.CheckIn)
		if !ok {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"check_in": "must be RFC3339"})
			return
		}
		checkOut, ok := parseTimestamp(req.CheckOut)
		if !ok {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"check_out": "must be RFC3339"})
			return
		}

		st, err := svc.Create(r.Context(), CreateInput{
			DogID:      req.DogID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Notes:      req.Notes,
			PriceTotal: req.PriceTotal,
		})
		if err != nil {
			writeStayError(w, err)
			return
		}

		// Recién creado: sin services vinculados, total == price_total.
		httpjson.Write(w, http.StatusCreated, toStayResponse(st, st.PriceTotal))
	}
}

func listStaysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{
			DogID:   strings.TrimSpace(q.Get("dog")),
			OwnerID: strings.TrimSpace(q.Get("owner")),
			OrderBy: strings.TrimSpace(q.Get("ordering")),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeStayError(w, err)
			return
		}

		out := make([]stayResponse, 0, len(items))
		for _, st := range items {
			total, err := svc.Total(r.Context(), st)
			if err != nil {
				httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			}
			out = append(out, toStayResponse(st, total))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getStayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetByID(r.Context(), chi.URLParam(r, "stayID"))
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Stay not found")
			return
		}

		total, err := svc.Total(r.Context(), st)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpjson.Write(w, http.StatusOK, toStayResponse(st, total))
	}
}

func updateStayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			Notes:      req.Notes,
			PriceTotal: req.PriceTotal,
		}
		if req.CheckIn != nil {
			t, ok := parseTimestamp(*req.CheckIn)
			if !ok || t == nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"check_in": "must be RFC3339"})
				return
			}
			in.CheckIn = t
		}
		if req.CheckOut != nil {
			t, ok := parseTimestamp(*req.CheckOut)
			if !ok || t == nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"check_out": "must be RFC3339"})
				return
			}
			in.CheckOut = t
		}

		st, err := svc.Update(r.Context(), chi.URLParam(r, "stayID"), in)
		if err != nil {
			writeStayError(w, err)
			return
		}

		total, err := svc.Total(r.Context(), st)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpjson.Write(w, http.StatusOK, toStayResponse(st, total))
	}
}

func deleteStayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "stayID")); err != nil {
			writeStayError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeStayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPeriodOrder):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
			"check_out": "must not be before check_in",
		})
	case errors.Is(err, ErrDogNotFound):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"dog_id": "not found"})
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Stay not found")
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseTimestamp acepta "" (=> nil) o RFC3339.
func parseTimestamp(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
