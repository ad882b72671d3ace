package response

import (
	"time"

	"cafeteria-booking/internal/data/entity"
)

type TimeslotResponse struct {
	ID       string    `json:"id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// SeatResponse is a seat with availability for one timeslot. Available is
// derived from the hold timer, not the raw reservation status.
type SeatResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
	Mine      bool   `json:"mine"`
}

type ReservationResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	SeatID      string                   `json:"seat_id"`
	TimeslotID  string                   `json:"timeslot_id"`
	Status      entity.ReservationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	AvailableAt *time.Time               `json:"available_at,omitempty"`
	Seat        *SeatResponse            `json:"seat,omitempty"`
	Timeslot    *TimeslotResponse        `json:"timeslot,omitempty"`
}

// Helper converters
func TimeslotToResponse(t *entity.Timeslot) TimeslotResponse {
	return TimeslotResponse{
		ID:       t.ID.String(),
		StartsAt: t.StartsAt,
		EndsAt:   t.EndsAt,
	}
}

func ReservationToResponse(res *entity.Reservation, seat *entity.Seat, timeslot *entity.Timeslot) ReservationResponse {
	resp := ReservationResponse{
		ID:          res.ID.String(),
		UserID:      res.UserID.String(),
		SeatID:      res.SeatID.String(),
		TimeslotID:  res.TimeslotID.String(),
		Status:      res.Status,
		CreatedAt:   res.CreatedAt,
		AvailableAt: res.AvailableAt,
	}

	if seat != nil {
		resp.Seat = &SeatResponse{
			ID:        seat.ID.String(),
			Label:     seat.Label,
			Available: false,
			Mine:      true,
		}
	}

	if timeslot != nil {
		ts := TimeslotToResponse(timeslot)
		resp.Timeslot = &ts
	}

	return resp
}
