package language

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("language not found")

// NotFoundError reports a stream whose language could not be resolved.
type NotFoundError struct {
	Raw    string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("language not found: %s", e.Reason)
	}
	return fmt.Sprintf("language not found: %q: %s", e.Raw, e.Reason)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ErrorKind classifies the error for logging and history records.
func (e *NotFoundError) ErrorKind() string {
	return "language_not_found"
}
