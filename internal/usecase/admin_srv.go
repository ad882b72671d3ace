package usecase

import (
	"context"
	"fmt"

	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ResetBalance is what every manager account is restored to by the
// administrative reset, regardless of its seeded or lazily created value.
const ResetBalance = 50000.00

type AdminService interface {
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	Stats(ctx context.Context) (*response.StatsResponse, error)
	// Bookings returns today's and tomorrow's timeslots with their
	// confirmed reservations, grouped by date.
	Bookings(ctx context.Context) (*response.BookingsResponse, error)
	// Reset cancels every confirmed reservation and restores all manager
	// balances. Charges are kept as the audit trail, so revenue figures do
	// not reconcile to balances afterwards.
	Reset(ctx context.Context) (*response.ResetResponse, error)
}

type adminService struct {
	repo  *repository.Repository
	clock clockwork.Clock
	log   *zap.Logger
}

func NewAdminService(repo *repository.Repository, clock clockwork.Clock, log *zap.Logger) AdminService {
	return &adminService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	now := s.clock.Now()

	live, err := s.repo.Reservation.FindLiveDetailed(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard live reservations: %w", err)
	}

	managers, err := s.repo.Manager.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard managers: %w", err)
	}

	charges, err := s.repo.Charge.FindRecent(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("dashboard charges: %w", err)
	}

	occupancy, err := s.repo.Reservation.ListSeatOccupancy(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard occupancy: %w", err)
	}

	today := startOfDay(now)
	bookingsToday, err := s.repo.Reservation.CountConfirmedCreatedBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("dashboard bookings today: %w", err)
	}

	revenue, err := s.repo.Charge.TotalAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard revenue: %w", err)
	}

	mostBooked, err := s.repo.Reservation.MostBookedSeats(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("dashboard most booked seats: %w", err)
	}

	resp := &response.DashboardResponse{
		ActiveReservations: make([]response.ReservationDetailResponse, 0, len(live)),
		Managers:           make([]response.ManagerResponse, 0, len(managers)),
		RecentCharges:      make([]response.ChargeResponse, 0, len(charges)),
		SeatOccupancy:      make([]response.SeatOccupancyResponse, 0, len(occupancy)),
		Statistics: response.DashboardStatistics{
			TotalActiveReservations: int64(len(live)),
			BookingsToday:           bookingsToday,
			TotalRevenue:            revenue,
			MostBookedSeats:         make([]response.SeatBookingsResponse, 0, len(mostBooked)),
		},
	}

	for _, d := range live {
		resp.ActiveReservations = append(resp.ActiveReservations, response.ReservationDetailToResponse(d))
	}
	for _, m := range managers {
		resp.Managers = append(resp.Managers, response.ManagerToResponse(m))
	}
	for _, c := range charges {
		resp.RecentCharges = append(resp.RecentCharges, response.ChargeDetailToResponse(c))
	}
	for _, o := range occupancy {
		resp.SeatOccupancy = append(resp.SeatOccupancy, response.SeatOccupancyToResponse(o))
	}
	for _, b := range mostBooked {
		resp.Statistics.MostBookedSeats = append(resp.Statistics.MostBookedSeats, response.SeatBookingsResponse{
			Seat:     b.Label,
			Bookings: b.Bookings,
		})
	}

	return resp, nil
}

func (s *adminService) Stats(ctx context.Context) (*response.StatsResponse, error) {
	now := s.clock.Now()
	today := startOfDay(now)

	bookingsToday, err := s.repo.Reservation.CountConfirmedCreatedBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("stats bookings today: %w", err)
	}

	revenue, err := s.repo.Charge.TotalAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats revenue: %w", err)
	}

	active, err := s.repo.Reservation.CountConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats active reservations: %w", err)
	}

	resp := &response.StatsResponse{
		BookingsToday:      bookingsToday,
		TotalRevenue:       revenue,
		ActiveReservations: active,
	}

	lowest, err := s.repo.Manager.FindLowestBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats lowest balance manager: %w", err)
	}
	if lowest != nil {
		resp.LowestBalanceManager = response.ManagerBriefResponse{
			Name:    lowest.ManagerName,
			Balance: lowest.Balance,
		}
	}

	mostActive, err := s.repo.Charge.MostCharged(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("stats most active manager: %w", err)
	}
	if len(mostActive) > 0 {
		resp.MostActiveManager = response.ManagerActivityResponse{
			Name:    mostActive[0].ManagerName,
			Charges: mostActive[0].Charges,
		}
	}

	return resp, nil
}

func (s *adminService) Bookings(ctx context.Context) (*response.BookingsResponse, error) {
	now := s.clock.Now()
	today := startOfDay(now)

	timeslots, err := s.repo.Timeslot.FindByRange(ctx, today, today.AddDate(0, 0, 2))
	if err != nil {
		return nil, fmt.Errorf("bookings timeslots: %w", err)
	}

	slotIDs := make([]uuid.UUID, 0, len(timeslots))
	for _, t := range timeslots {
		slotIDs = append(slotIDs, t.ID)
	}

	details, err := s.repo.Reservation.FindConfirmedDetailedByTimeslots(ctx, slotIDs)
	if err != nil {
		return nil, fmt.Errorf("bookings reservations: %w", err)
	}

	bySlot := make(map[uuid.UUID][]response.ReservationDetailResponse)
	for _, d := range details {
		bySlot[d.TimeslotID] = append(bySlot[d.TimeslotID], response.ReservationDetailToResponse(d))
	}

	resp := &response.BookingsResponse{
		BookingsByDate: make(map[string][]response.TimeslotBookingsResponse),
		Dates: []string{
			today.Format("2006-01-02"),
			today.AddDate(0, 0, 1).Format("2006-01-02"),
		},
	}

	for _, t := range timeslots {
		reservations := bySlot[t.ID]
		if reservations == nil {
			reservations = []response.ReservationDetailResponse{}
		}
		date := t.StartsAt.Format("2006-01-02")
		resp.BookingsByDate[date] = append(resp.BookingsByDate[date], response.TimeslotBookingsResponse{
			ID:                t.ID.String(),
			StartsAt:          t.StartsAt,
			EndsAt:            t.EndsAt,
			Date:              date,
			TimeRange:         fmt.Sprintf("%s - %s", t.StartsAt.Format("15:04"), t.EndsAt.Format("15:04")),
			ReservationsCount: len(reservations),
			Reservations:      reservations,
		})
	}

	return resp, nil
}

func (s *adminService) Reset(ctx context.Context) (*response.ResetResponse, error) {
	cancelled, err := s.repo.Reservation.CancelAllConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset reservations: %w", err)
	}

	restored, err := s.repo.Manager.ResetBalances(ctx, ResetBalance)
	if err != nil {
		return nil, fmt.Errorf("reset balances: %w", err)
	}

	s.log.Info("System reset",
		zap.Int64("cancelled_reservations", cancelled),
		zap.Int64("restored_managers", restored),
	)

	return &response.ResetResponse{
		CancelledReservations: cancelled,
		RestoredManagers:      restored,
	}, nil
}
