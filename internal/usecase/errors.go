package usecase

import (
	"errors"
	"fmt"

	"cafeteria-booking/pkg/utils"
)

// Sentinel errors returned by the services. Handlers translate these to HTTP
// status codes with errors.Is; everything unmatched is an internal error.
var (
	ErrSeatNotFound        = errors.New("seat not found")
	ErrTimeslotNotFound    = errors.New("timeslot not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrBookingLimit means the user already holds the maximum number of
	// confirmed reservations across all timeslots.
	ErrBookingLimit = errors.New("maximum booking limit reached")

	// ErrSeatTaken means the seat is still held for the timeslot. Returned
	// by the pre-check; the storage layer independently enforces the same
	// rule under races.
	ErrSeatTaken = errors.New("seat already booked for this timeslot")

	// ErrNoManager means the user record carries no manager reference, so
	// there is no account to charge.
	ErrNoManager = errors.New("user does not have a manager assigned")

	// ErrDateOutOfRange means the requested date is outside the bookable
	// window of today and tomorrow.
	ErrDateOutOfRange = errors.New("only today or tomorrow can be booked")

	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// ValidationError carries per-field messages from request validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

// validateRequest runs struct validation and wraps failures so handlers can
// surface the field map.
func validateRequest(data any) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
