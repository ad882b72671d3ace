package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation books one seat for one timeslot by one user. Rows are never
// physically deleted; the only status transition is CONFIRMED -> CANCELLED.
// AvailableAt is the instant the seat becomes bookable by someone else,
// set once at creation; a nil value means an unlimited hold.
type Reservation struct {
	BaseSimple
	UserID      uuid.UUID         `db:"user_id"`
	SeatID      uuid.UUID         `db:"seat_id"`
	TimeslotID  uuid.UUID         `db:"timeslot_id"`
	Status      ReservationStatus `db:"status"`
	AvailableAt *time.Time        `db:"available_at"`
}

// HoldsSeat reports whether the reservation still blocks its seat at the
// given instant. The hold timer, not the row status, governs this: an
// expired hold is stale but not cancelled.
func (r *Reservation) HoldsSeat(now time.Time) bool {
	if r.Status != ReservationStatusConfirmed {
		return false
	}
	return r.AvailableAt == nil || r.AvailableAt.After(now)
}
