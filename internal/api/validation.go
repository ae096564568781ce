package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matchpredict/matchpredict/internal/models"
)

// newValidator reports fields by their JSON names so messages match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateMatch checks required fields in declaration order and reports the
// first one missing.
func validateMatch(v *validator.Validate, req models.MatchRequest) *RequestError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return badRequest("Missing required field: " + fe.Field())
		}
		return badRequest("Invalid field: " + fe.Field())
	}
	return badRequest("Invalid request body")
}
