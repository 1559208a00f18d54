// Package engine holds the bed registry, the patient queue and the
// allocation logic that couples them. It defines sentinel error values
// that are reused across the engine so that higher layers such as
// handlers can distinguish between different failure scenarios. For
// example, ErrBedNotAvailable indicates that a placement raced against
// another caller for the same bed, while ErrInvalidTransition signals a
// status change that would break the occupant/status pairing.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBedNotFound is returned when a bed lookup yields no entry.
// Handlers should translate this into an HTTP 404 response.
var ErrBedNotFound = errors.New("bed not found")

// ErrPatientNotFound is returned when a patient id is not present in
// the waiting queue, including the case where a concurrent placement
// already removed it. Handlers should translate this into an HTTP 404
// response.
var ErrPatientNotFound = errors.New("patient not found")

// ErrBedNotAvailable is returned when a placement targets a bed whose
// status is not Available. Handlers should translate this into an
// HTTP 409 response.
var ErrBedNotAvailable = errors.New("bed not available")

// ErrInvalidTransition is returned when a status change would violate
// the bed state machine, such as occupying a bed without an occupant
// or sending an occupied bed to maintenance without discharging first.
// Handlers should translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid bed status transition")

// ValidationError reports every invalid field of a patient admission
// request at once so a caller can render all field errors together.
// Fields maps the lower-cased field name to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid patient: %s", strings.Join(names, ", "))
}
