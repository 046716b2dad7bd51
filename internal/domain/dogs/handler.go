package dogs

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

// Rutas planas (sin Route) para convivir con /dogs/{dogID}/timeline,
// que registra el módulo timeline.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/dogs", createDogHandler(svc))
	r.Get("/dogs", listDogsHandler(svc))
	r.Get("/dogs/{dogID}", getDogHandler(svc))
	r.Put("/dogs/{dogID}", updateDogHandler(svc, true))
	r.Patch("/dogs/{dogID}", updateDogHandler(svc, false))
	r.Delete("/dogs/{dogID}", deleteDogHandler(svc))
}

type createDogRequest struct {
	OwnerID   string `json:"owner_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Age       *int   `json:"age" validate:"omitempty,min=0"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	Size      string `json:"size" validate:"required,oneof=small medium large"`
	Breed     string `json:"breed"`
	Instagram string `json:"instagram"`
}

type updateDogRequest struct {
	Name      *string `json:"name"`
	Age       *int    `json:"age"`
	BirthDate *string `json:"birth_date"` // YYYY-MM-DD
	Gender    *string `json:"gender"`
	Size      *string `json:"size"`
	Breed     *string `json:"breed"`
	Instagram *string `json:"instagram"`
	Active    *bool   `json:"active"`
}

// Response es el shape JSON del dog; lo usan también owners y onboarding.
type Response struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Name      string    `json:"name"`
	Age       *int      `json:"age,omitempty"`
	BirthDate *string   `json:"birth_date,omitempty"`
	Gender    string    `json:"gender"`
	Size      string    `json:"size"`
	Breed     string    `json:"breed"`
	Instagram string    `json:"instagram,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ownerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	CPF      string `json:"cpf,omitempty"`
	Address  string `json:"address,omitempty"`
	District string `json:"district,omitempty"`
}

func ToResponse(d Dog) Response {
	var bd *string
	if d.BirthDate != nil {
		s := d.BirthDate.Format("2006-01-02")
		bd = &s
	}
	return Response{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Age:       d.Age,
		BirthDate: bd,
		Gender:    string(d.Gender),
		Size:      string(d.Size),
		Breed:     d.Breed,
		Instagram: d.Instagram,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		bd, ok := parseDate(req.BirthDate)
		if !ok {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
				"birth_date": "must be YYYY-MM-DD",
			})
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			OwnerID:   req.OwnerID,
			Name:      req.Name,
			Age:       req.Age,
			BirthDate: bd,
			Gender:    req.Gender,
			Size:      req.Size,
			Breed:     req.Breed,
			Instagram: req.Instagram,
		})
		if err != nil {
			writeDogError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, ToResponse(d))
	}
}

func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			OwnerID:         strings.TrimSpace(r.URL.Query().Get("owner")),
			IncludeInactive: r.URL.Query().Get("include_inactive") == "1",
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]Response, 0, len(items))
		for _, d := range items {
			out = append(out, ToResponse(d))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	// Detalle compuesto: dog (sin owner_id) + owner embebido.
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Dog not found")
			return
		}

		info, err := svc.OwnerInfoOf(r.Context(), d)
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Owner not found")
			return
		}

		resp := ToResponse(d)
		resp.OwnerID = ""

		httpjson.Write(w, http.StatusOK, map[string]any{
			"dog": resp,
			"owner": ownerResponse{
				ID:       info.ID,
				Name:     info.Name,
				Phone:    info.Phone,
				Email:    info.Email,
				CPF:      info.CPF,
				Address:  info.Address,
				District: info.District,
			},
		})
	}
}

func updateDogHandler(svc *Service, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if full && (req.Name == nil || req.Gender == nil || req.Size == nil) {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
				"name": "required", "gender": "required", "size": "required",
			})
			return
		}

		var bd *time.Time
		if req.BirthDate != nil {
			parsed, ok := parseDate(*req.BirthDate)
			if !ok || parsed == nil {
				httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
					"birth_date": "must be YYYY-MM-DD",
				})
				return
			}
			bd = parsed
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "dogID"), UpdateInput{
			Name:      req.Name,
			Age:       req.Age,
			BirthDate: bd,
			Gender:    req.Gender,
			Size:      req.Size,
			Breed:     req.Breed,
			Instagram: req.Instagram,
			Active:    req.Active,
		})
		if err != nil {
			writeDogError(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, ToResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeDogError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeDogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Dog not found")
	case errors.Is(err, ErrOwnerNotFound):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"owner_id": "not found"})
	case errors.Is(err, ErrInUse):
		httpjson.WriteError(w, http.StatusBadRequest, "Dog is still referenced by stays or services")
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseDate acepta "" (=> nil) o YYYY-MM-DD.
func parseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
