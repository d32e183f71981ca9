package services

import (
	"github.com/gin-gonic/gin/binding"

	"artisan_market/internal/apperr"
)

// validate runs the binding rules of in, the same ones gin applies when a
// handler binds the request body. Services run them again so callers other
// than the HTTP layer, such as sellerctl, get the same checks.
func validate(in any, fallback string) error {
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return apperr.Binding(err, fallback)
	}
	return nil
}
