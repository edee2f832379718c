package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"foodstore/internal/domain"
)

var validate = validator.New()

// decodeJSON decodes and validates a request body. Malformed JSON and
// failed validation both map to EINVALID.
func decodeJSON(r *http.Request, op string, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Invalid(op, "Invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return domain.Invalid(op, "Invalid value for field '"+errs[0].Field()+"'")
		}
		return domain.Invalid(op, "Invalid request body")
	}
	return nil
}
