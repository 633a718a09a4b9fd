package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("invalid booking request")
	ErrPastSlot            = errors.New("requested time has already passed")
	ErrOutsideAvailability = errors.New("requested interval is outside published availability")
	ErrSlotConflict        = errors.New("requested interval is already occupied")
	ErrNotFound            = errors.New("not found")
)

// ValidationError описывает конкретное невалидное поле
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
