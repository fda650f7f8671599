package validatex

import (
	"errors"
	"sync"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/errx"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates the `validate` tags of a request DTO. Failures come back
// as a VALIDATION error listing the offending fields.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errx.Wrap(err, "invalid request", errx.TypeValidation)
	}

	out := errx.New("invalid request", errx.TypeValidation)
	for _, fe := range fieldErrs {
		out = out.WithDetail(fe.Field(), fe.Tag())
	}
	return out
}
