package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when a document is valid JSON but not a class list.
var ErrInvalidDocument = errors.New("document is not a class list")

// InputError reports an input document that cannot be read or parsed.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
