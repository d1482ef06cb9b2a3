package scheme

import (
	"errors"
	"strings"
)

var (
	ErrNotFound         = errors.New("scheme not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrPersist          = errors.New("persist schemes")
)

// ValidationError names the draft fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// HasField reports whether name is among the offending fields.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f == name {
			return true
		}
	}
	return false
}
