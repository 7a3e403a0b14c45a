package library

import (
	"errors"
	"fmt"
)

var (
	ErrMethodIDRequired = errors.New("library: method id required")
	ErrMethodRequired   = errors.New("library: method required")
)

// NotFoundError is returned when a method id has no stored record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
