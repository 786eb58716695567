package recipe

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that a recipe is fit to be added to the catalog.
func Validate(r Recipe) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid recipe %q: %w", r.ID, err)
	}
	return nil
}
