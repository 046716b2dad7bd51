package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

var validate = httpjson.NewValidator()

func RegisterRoutes(r chi.Router, svc *Service, dogsSvc *dogs.Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc))

		// Detalle compuesto: owner + sus dogs.
		or.Get("/{ownerID}", getOwnerHandler(svc, dogsSvc))

		or.Put("/{ownerID}", updateOwnerHandler(svc, true))
		or.Patch("/{ownerID}", updateOwnerHandler(svc, false))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc))
	})
}

type createOwnerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	CPF      string `json:"cpf" validate:"omitempty,max=14"`
	Address  string `json:"address"`
	District string `json:"district"`
}

type updateOwnerRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	CPF      *string `json:"cpf"`
	Address  *string `json:"address"`
	District *string `json:"district"`
}

// Response es el shape JSON del owner; lo usan también onboarding y dogs.
type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	CPF       string    `json:"cpf,omitempty"`
	Address   string    `json:"address,omitempty"`
	District  string    `json:"district,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(o Owner) Response {
	return Response{
		ID:        o.ID,
		Name:      o.Name,
		Phone:     o.Phone,
		Email:     o.Email,
		CPF:       o.CPF,
		Address:   o.Address,
		District:  o.District,
		CreatedAt: o.CreatedAt,
	}
}

func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(req); err != nil {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, httpjson.FieldErrors(err))
			return
		}

		o, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			CPF:      req.CPF,
			Address:  req.Address,
			District: req.District,
		})
		if err != nil {
			writeOwnerError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, ToResponse(o))
	}
}

func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]Response, 0, len(items))
		for _, o := range items {
			out = append(out, ToResponse(o))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getOwnerHandler(svc *Service, dogsSvc *dogs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := chi.URLParam(r, "ownerID")

		o, err := svc.GetByID(r.Context(), ownerID)
		if err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Owner not found")
			return
		}

		ds, err := dogsSvc.ListByOwner(r.Context(), o.ID)
		if err != nil {
			httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		dogOut := make([]dogs.Response, 0, len(ds))
		for _, d := range ds {
			dogOut = append(dogOut, dogs.ToResponse(d))
		}

		httpjson.Write(w, http.StatusOK, map[string]any{
			"owner": ToResponse(o),
			"dogs":  dogOut,
		})
	}
}

func updateOwnerHandler(svc *Service, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if full && (req.Name == nil || req.Phone == nil) {
			httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{
				"name": "required", "phone": "required",
			})
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "ownerID"), UpdateInput{
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			CPF:      req.CPF,
			Address:  req.Address,
			District: req.District,
		})
		if err != nil {
			writeOwnerError(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, ToResponse(o))
	}
}

func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "ownerID"))
		if err != nil {
			writeOwnerError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeOwnerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCPFInUse):
		httpjson.WriteFieldErrors(w, http.StatusBadRequest, map[string]string{"cpf": "duplicate"})
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "Owner not found")
	case errors.Is(err, ErrInUse):
		httpjson.WriteError(w, http.StatusBadRequest, "Owner is still referenced by dogs, stays or services")
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
