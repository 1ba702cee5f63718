package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Package-level sentinels wrap one of these so callers can
// classify any failure with errors.Is.
var (
	// ErrValidation malformed identifiers, dates or settings (caller's fault)
	ErrValidation = errors.New("validation error")

	// ErrNotFound captain, trip type, booking or policy record is absent
	ErrNotFound = errors.New("not found")

	// ErrUnavailable the captain is intentionally closed
	ErrUnavailable = errors.New("unavailable")

	// ErrConflict the requested interval is no longer free
	ErrConflict = errors.New("conflict")

	// ErrAccessDenied the acting user is neither the guest nor the captain of the record
	ErrAccessDenied = errors.New("access denied")
)

// UnavailableKind explains why a captain is unavailable
type UnavailableKind string

const (
	UnavailableHibernating UnavailableKind = "hibernating"
)

// UnavailableError is returned when availability is suppressed on purpose
type UnavailableError struct {
	Kind UnavailableKind
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnavailable, e.Kind)
}

// Is makes errors.Is(err, ErrUnavailable) match
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// UnavailableKindOf extracts the kind from an error chain
func UnavailableKindOf(err error) (UnavailableKind, bool) {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return "", false
}
