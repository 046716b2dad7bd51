package timeline

import (
	"errors"
	"net/http"
	"time"

	"dog-boarding-api/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dogs/{dogID}/timeline", getTimelineHandler(svc))
}

type entryResponse struct {
	EventKind string `json:"event_kind"`

	StayID     string     `json:"stay_id,omitempty"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	PriceTotal *float64   `json:"price_total,omitempty"`

	ServiceID   string            `json:"service_id,omitempty"`
	ServiceType string            `json:"service_type,omitempty"`
	PerformedAt *time.Time        `json:"performed_at,omitempty"`
	Day         *string           `json:"day,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   *time.Time        `json:"created_at,omitempty"`

	Notes string `json:"notes,omitempty"`
}

func toEntryResponse(e Entry) entryResponse {
	var day *string
	if e.Day != nil {
		s := e.Day.Format("2006-01-02")
		day = &s
	}
	return entryResponse{
		EventKind:   string(e.Kind),
		StayID:      e.StayID,
		CheckIn:     e.CheckIn,
		CheckOut:    e.CheckOut,
		PriceTotal:  e.PriceTotal,
		ServiceID:   e.ServiceID,
		ServiceType: e.ServiceType,
		PerformedAt: e.PerformedAt,
		Day:         day,
		Price:       e.Price,
		Currency:    e.Currency,
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
		Notes:       e.Notes,
	}
}

func getTimelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ForDog(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			if errors.Is(err, ErrDogNotFound) {
				httpjson.WriteError(w, http.StatusNotFound, "Dog not found")
				return
			}
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]entryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, toEntryResponse(e))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}
