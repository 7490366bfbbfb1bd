package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

var validate = newValidator()

// newValidator reuses the binding tags the HTTP layer already declares, so
// a request shape is validated the same way on both paths.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// ValidateRequest runs struct-tag validation and maps failures onto the
// service error taxonomy.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return ierr.NewError("request validation failed").
		WithHint("One or more fields are missing or malformed").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}
