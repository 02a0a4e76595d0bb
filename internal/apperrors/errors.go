// Package apperrors defines the error kinds the booking core reports.
// Handlers map them to HTTP statuses with errors.Is / errors.As; anything
// not in this taxonomy is treated as an opaque storage failure.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("you are not allowed to perform this action")

	// ErrDuplicatePendingBooking is the conflict class: the same customer
	// already has a pending booking for the same listing on the same date.
	ErrDuplicatePendingBooking = errors.New("you already have a pending booking for this item on this date")
)

// ValidationError reports a malformed creation payload, naming each
// offending field. Recoverable by the caller, never a server fault.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// InvalidTransitionError reports an illegal status-machine edge,
// carrying both endpoints for diagnostics.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}
