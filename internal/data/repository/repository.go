package repository

import (
	"cafeteria-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Manager     ManagerRepository
	Seat        SeatRepository
	Timeslot    TimeslotRepository
	Reservation ReservationRepository
	Charge      ChargeRepository
	Session     SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Manager:     NewManagerRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Timeslot:    NewTimeslotRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Charge:      NewChargeRepository(db, log),
		Session:     NewSessionRepository(db, log),
	}
}
