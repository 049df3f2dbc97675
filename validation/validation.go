// Package validation runs declarative field checks against decoded request
// bodies. Rules are expressed as `validate` struct tags on the request DTOs
// (go-playground/validator); each route supplies the human-readable message
// for every checked field. Validation is purely syntactic, presence and
// format only, never a check against stored data; failures short-circuit
// the request with a 400 listing one message per failed field.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/user/devconnector-go/apperror"
)

// validate is the shared validator instance. The library caches struct
// metadata internally, so a single instance is reused across requests.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Messages maps a DTO struct field name to the message reported when any of
// that field's rules fail.
type Messages map[string]string

// Struct checks the `validate` tags on s and returns a ValidationError
// listing one message per failed field, in the order the validator reports
// them. Fields without a configured message fall back to a generic one.
func Struct(s interface{}, messages Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// An InvalidValidationError means s was not a struct; that is a
		// programming error, not a client error.
		return apperror.NewInternalError("failed to validate request", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.StructField())
		}
		fields = append(fields, apperror.FieldError{Msg: msg})
	}
	return apperror.NewValidationError(fields...)
}
