package matching

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a malformed keyword collection or out-of-range configuration
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid input: %s", e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrInvalidInput) true for any InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
