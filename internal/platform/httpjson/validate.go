package httpjson

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator crea un *validator.Validate que reporta los campos
// por su json tag (birth_date, no BirthDate).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
