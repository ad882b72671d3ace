package entity

import "time"

// Timeslot is a fixed 30-minute booking window. Slots are seeded for today
// and tomorrow only and are immutable afterwards.
type Timeslot struct {
	BaseSimple
	StartsAt time.Time `db:"starts_at"`
	EndsAt   time.Time `db:"ends_at"`
}
