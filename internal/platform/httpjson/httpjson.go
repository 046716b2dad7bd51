package httpjson

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Helpers JSON compartidos por los handlers de todos los módulos.
// Antes estaban duplicados por módulo; con esta cantidad de handlers
// ya conviene extraerlos a un helper común.

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError responde el shape estable {"error": "..."}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// WriteFieldErrors responde errores por campo: {"cpf": "duplicate"}.
func WriteFieldErrors(w http.ResponseWriter, status int, fields map[string]string) {
	Write(w, status, fields)
}

// FieldErrors convierte validator.ValidationErrors a un map campo -> razón.
// Usa el json tag declarado en el request (minúsculas snake_case).
func FieldErrors(err error) map[string]string {
	out := map[string]string{}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = "invalid"
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "required"
		case "oneof":
			out[field] = "must be one of: " + fe.Param()
		case "email":
			out[field] = "must be a valid email"
		case "min":
			out[field] = "too short"
		case "max":
			out[field] = "too long"
		default:
			out[field] = "invalid"
		}
	}
	return out
}
