// Package repository implements the storage layer on top of Postgres. The
// sentinel errors below let the usecase layer branch on expected storage
// outcomes with errors.Is instead of inspecting driver errors itself.
package repository

import "errors"

// ErrDuplicateReservation is returned when a reservation insert hits one of
// the partial unique indexes on (seat, timeslot) or (user, timeslot). Two
// admission attempts can both pass validation and race to commit; the
// storage constraint picks the winner and the loser gets this error.
var ErrDuplicateReservation = errors.New("duplicate reservation")

// ErrInsufficientBalance is returned when the guarded balance debit inside
// the admission transaction affects no row, meaning the manager balance
// dropped below the fee after validation.
var ErrInsufficientBalance = errors.New("insufficient manager balance")
