package request

type CreateReservationRequest struct {
	SeatID     string `json:"seat_id" validate:"required,uuid4"`
	TimeslotID string `json:"timeslot_id" validate:"required,uuid4"`
}
