package response

import (
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/data/repository"
)

type ManagerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type ChargeResponse struct {
	ID          string    `json:"id"`
	ManagerName string    `json:"manager_name"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReservationDetailResponse struct {
	ID            string     `json:"id"`
	UserEmail     string     `json:"user_email"`
	UserName      string     `json:"user_name"`
	SeatLabel     string     `json:"seat_label"`
	TimeslotStart time.Time  `json:"timeslot_start"`
	TimeslotEnd   time.Time  `json:"timeslot_end"`
	CreatedAt     time.Time  `json:"created_at"`
	AvailableAt   *time.Time `json:"available_at,omitempty"`
	ManagerName   string     `json:"manager_name"`
}

type SeatOccupancyResponse struct {
	ID                 string `json:"id"`
	Label              string `json:"label"`
	ActiveReservations int64  `json:"active_reservations"`
	IsOccupied         bool   `json:"is_occupied"`
}

type SeatBookingsResponse struct {
	Seat     string `json:"seat"`
	Bookings int64  `json:"bookings"`
}

type DashboardStatistics struct {
	TotalActiveReservations int64                  `json:"total_active_reservations"`
	BookingsToday           int64                  `json:"bookings_today"`
	TotalRevenue            float64                `json:"total_revenue"`
	MostBookedSeats         []SeatBookingsResponse `json:"most_booked_seats"`
}

type DashboardResponse struct {
	ActiveReservations []ReservationDetailResponse `json:"active_reservations"`
	Managers           []ManagerResponse           `json:"managers"`
	RecentCharges      []ChargeResponse            `json:"recent_charges"`
	SeatOccupancy      []SeatOccupancyResponse     `json:"seat_occupancy"`
	Statistics         DashboardStatistics         `json:"statistics"`
}

type ManagerBriefResponse struct {
	Name    string  `json:"name,omitempty"`
	Balance float64 `json:"balance"`
}

type ManagerActivityResponse struct {
	Name    string `json:"name,omitempty"`
	Charges int64  `json:"charges"`
}

type StatsResponse struct {
	BookingsToday        int64                   `json:"bookings_today"`
	TotalRevenue         float64                 `json:"total_revenue"`
	ActiveReservations   int64                   `json:"active_reservations"`
	LowestBalanceManager ManagerBriefResponse    `json:"lowest_balance_manager"`
	MostActiveManager    ManagerActivityResponse `json:"most_active_manager"`
}

type TimeslotBookingsResponse struct {
	ID                string                      `json:"id"`
	StartsAt          time.Time                   `json:"starts_at"`
	EndsAt            time.Time                   `json:"ends_at"`
	Date              string                      `json:"date"`
	TimeRange         string                      `json:"time_range"`
	ReservationsCount int                         `json:"reservations_count"`
	Reservations      []ReservationDetailResponse `json:"reservations"`
}

type BookingsResponse struct {
	BookingsByDate map[string][]TimeslotBookingsResponse `json:"bookings_by_date"`
	Dates          []string                              `json:"dates"`
}

type ResetResponse struct {
	CancelledReservations int64 `json:"cancelled_reservations"`
	RestoredManagers      int64 `json:"restored_managers"`
}

type VerifyResponse struct {
	Status             string                 `json:"status"`
	Seats              int64                  `json:"seats"`
	Timeslots          int64                  `json:"timeslots"`
	ActiveReservations int64                  `json:"active_reservations"`
	Managers           []ManagerBriefResponse `json:"managers"`
	RecentCharges      []ChargeResponse       `json:"recent_charges"`
}

// Helper converters
func ManagerToResponse(m *entity.Manager) ManagerResponse {
	return ManagerResponse{
		ID:      m.ID.String(),
		Name:    m.ManagerName,
		Balance: m.Balance,
	}
}

func ChargeDetailToResponse(c *repository.ChargeDetail) ChargeResponse {
	return ChargeResponse{
		ID:          c.ID,
		ManagerName: c.ManagerName,
		Amount:      c.Amount,
		CreatedAt:   c.CreatedAt,
	}
}

func ReservationDetailToResponse(d *repository.ReservationDetail) ReservationDetailResponse {
	return ReservationDetailResponse{
		ID:            d.ID.String(),
		UserEmail:     d.UserEmail,
		UserName:      d.UserName,
		SeatLabel:     d.SeatLabel,
		TimeslotStart: d.StartsAt,
		TimeslotEnd:   d.EndsAt,
		CreatedAt:     d.CreatedAt,
		AvailableAt:   d.AvailableAt,
		ManagerName:   d.ManagerName,
	}
}

func SeatOccupancyToResponse(o *repository.SeatOccupancy) SeatOccupancyResponse {
	return SeatOccupancyResponse{
		ID:                 o.SeatID.String(),
		Label:              o.Label,
		ActiveReservations: o.ActiveReservations,
		IsOccupied:         o.ActiveReservations > 0,
	}
}
