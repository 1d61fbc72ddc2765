package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/wcsim/macgen/internal/common/sweeperrors"
)

// ValidationErrors converts the result of validator.Struct into typed errors.
// Each failed field becomes an ErrInvalidArgument whose message is produced by describe;
// the errors are returned together as a multierror.Error in field order.
func ValidationErrors(err error, describe func(validator.FieldError) string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}
	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, &sweeperrors.ErrInvalidArgument{
			Name:    fe.Field(),
			Value:   fe.Value(),
			Message: describe(fe),
		})
	}
	return result.ErrorOrNil()
}
