// Package sweeperrors contains the error types returned while building and running a sweep.
// Callers should match on them with errors.As, since they are usually wrapped with a stack
// trace by github.com/pkg/errors.
//
// If several independent checks fail (e.g., several option values are outside their allow-lists),
// the function doing the checking should return an error of type multierror.Error from package
// github.com/hashicorp/go-multierror that encapsulates those individual errors.
package sweeperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned whenever an option has a value that can't be used.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the option referred to, e.g., "darkNoiseWindow"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", fmt.Sprint(err.Value), err.Name)
	}
	return fmt.Sprintf("value %q is invalid for field %q; %s", fmt.Sprint(err.Value), err.Name, err.Message)
}

// ErrStubCollision is returned when two distinct combinations of a sweep would be written
// to the same file.
type ErrStubCollision struct {
	Stub string
}

func (err *ErrStubCollision) Error() string {
	return fmt.Sprintf("more than one combination maps to file stub %q", err.Stub)
}

// ErrCommandFailed is returned when an external process exits unsuccessfully or can't be started.
type ErrCommandFailed struct {
	Command string
	Err     error
}

func (err *ErrCommandFailed) Error() string {
	return fmt.Sprintf("command %q failed: %s", err.Command, err.Err)
}

func (err *ErrCommandFailed) Unwrap() error {
	return err.Err
}

// IsInvalidArgument reports whether any error in the chain of err is an ErrInvalidArgument.
// Aggregated errors from go-multierror are searched too.
func IsInvalidArgument(err error) bool {
	var e *ErrInvalidArgument
	return errors.As(err, &e)
}
