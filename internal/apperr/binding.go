package apperr

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const MsgInvalidEmail = "Please provide a valid email address"

// Binding turns a failed gin binding or struct validation into a
// validation error. A failed email rule gets its own message; everything
// else, including malformed JSON, reports fallback.
func Binding(err error, fallback string) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "email" {
				return Validation(MsgInvalidEmail)
			}
		}
	}
	return Validation(fallback)
}
