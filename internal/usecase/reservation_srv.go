package usecase

import (
	"context"
	"fmt"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/dto/request"
	"cafeteria-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	// ReservationFee is the fixed amount debited from the manager account
	// per successful booking.
	ReservationFee = 10.00

	// HoldDuration is how long a confirmed reservation blocks its seat.
	// After it elapses the seat is bookable again without any status change.
	HoldDuration = 5 * time.Minute

	// MaxActiveReservations caps confirmed reservations per user across all
	// timeslots.
	MaxActiveReservations = 2

	// DefaultManagerBalance funds manager accounts created lazily on first
	// booking.
	DefaultManagerBalance = 1000.00
)

type ReservationService interface {
	ListTimeslots(ctx context.Context, date string) ([]response.TimeslotResponse, error)
	// ListSeats returns every seat with its availability for the timeslot.
	// userID may be uuid.Nil for anonymous callers; ownership is then never
	// reported.
	ListSeats(ctx context.Context, timeslotID string, userID uuid.UUID) ([]response.SeatResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID, reservationID string) error
	Verify(ctx context.Context) (*response.VerifyResponse, error)
}

type reservationService struct {
	repo  *repository.Repository
	clock clockwork.Clock
	log   *zap.Logger
}

func NewReservationService(repo *repository.Repository, clock clockwork.Clock, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) ListTimeslots(ctx context.Context, date string) ([]response.TimeslotResponse, error) {
	now := s.clock.Now()

	target, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, ErrInvalidDate
	}

	today := startOfDay(now)
	if target.Before(today) || target.After(today.AddDate(0, 0, 1)) {
		return nil, ErrDateOutOfRange
	}

	timeslots, err := s.repo.Timeslot.FindByRange(ctx, target, target.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list timeslots for %s: %w", date, err)
	}

	result := make([]response.TimeslotResponse, 0, len(timeslots))
	for _, t := range timeslots {
		result = append(result, response.TimeslotToResponse(t))
	}
	return result, nil
}

func (s *reservationService) ListSeats(ctx context.Context, timeslotID string, userID uuid.UUID) ([]response.SeatResponse, error) {
	slotID, err := uuid.Parse(timeslotID)
	if err != nil {
		return nil, ErrTimeslotNotFound
	}

	timeslot, err := s.repo.Timeslot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find timeslot %s: %w", timeslotID, err)
	}
	if timeslot == nil {
		return nil, ErrTimeslotNotFound
	}

	seats, err := s.repo.Seat.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	reservations, err := s.repo.Reservation.FindConfirmedByTimeslot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find reservations for timeslot %s: %w", timeslotID, err)
	}

	now := s.clock.Now()

	// The hold timer, not the row status, decides what counts as taken.
	heldSeats := make(map[uuid.UUID]bool)
	var mySeatID uuid.UUID
	for _, r := range reservations {
		if r.HoldsSeat(now) {
			heldSeats[r.SeatID] = true
		}
		if userID != uuid.Nil && r.UserID == userID {
			mySeatID = r.SeatID
		}
	}

	result := make([]response.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		result = append(result, response.SeatResponse{
			ID:        seat.ID.String(),
			Label:     seat.Label,
			Available: !heldSeats[seat.ID],
			Mine:      seat.ID == mySeatID && mySeatID != uuid.Nil,
		})
	}
	return result, nil
}

func (s *reservationService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create reservation validation failed", zap.Error(err))
		return nil, err
	}

	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		return nil, ErrSeatNotFound
	}
	slotID, err := uuid.Parse(req.TimeslotID)
	if err != nil {
		return nil, ErrTimeslotNotFound
	}

	seat, err := s.repo.Seat.FindByID(ctx, seatID)
	if err != nil {
		return nil, fmt.Errorf("find seat %s: %w", req.SeatID, err)
	}
	if seat == nil {
		return nil, ErrSeatNotFound
	}

	timeslot, err := s.repo.Timeslot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find timeslot %s: %w", req.TimeslotID, err)
	}
	if timeslot == nil {
		return nil, ErrTimeslotNotFound
	}

	activeCount, err := s.repo.Reservation.CountConfirmedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reservations for user %s: %w", userID.String(), err)
	}
	if activeCount >= MaxActiveReservations {
		return nil, ErrBookingLimit
	}

	now := s.clock.Now()

	// Pre-check only. The partial unique indexes are the real arbiter; this
	// exists to give a clean answer in the common, uncontended case.
	existing, err := s.repo.Reservation.FindConfirmedBySeatTimeslot(ctx, seatID, slotID)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	if existing != nil && existing.HoldsSeat(now) {
		return nil, ErrSeatTaken
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID.String(), err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.ManagerName == "" {
		return nil, ErrNoManager
	}

	manager, err := s.repo.Manager.GetOrCreate(ctx, user.ManagerName, DefaultManagerBalance)
	if err != nil {
		return nil, fmt.Errorf("resolve manager %s: %w", user.ManagerName, err)
	}

	if manager.Balance < ReservationFee {
		return nil, repository.ErrInsufficientBalance
	}

	availableAt := now.Add(HoldDuration)
	reservation := &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:      userID,
		SeatID:      seatID,
		TimeslotID:  slotID,
		Status:      entity.ReservationStatusConfirmed,
		AvailableAt: &availableAt,
	}

	err = s.repo.Reservation.Admit(ctx, repository.AdmitParams{
		Reservation: reservation,
		ManagerID:   manager.ID,
		Fee:         ReservationFee,
		Now:         now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("seat", seat.Label),
		zap.Time("available_at", availableAt),
	)

	resp := response.ReservationToResponse(reservation, seat, timeslot)
	return &resp, nil
}

func (s *reservationService) ListMine(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindConfirmedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %s: %w", userID.String(), err)
	}

	result := make([]response.ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		seat, err := s.repo.Seat.FindByID(ctx, res.SeatID)
		if err != nil {
			return nil, fmt.Errorf("find seat %s: %w", res.SeatID.String(), err)
		}
		timeslot, err := s.repo.Timeslot.FindByID(ctx, res.TimeslotID)
		if err != nil {
			return nil, fmt.Errorf("find timeslot %s: %w", res.TimeslotID.String(), err)
		}
		result = append(result, response.ReservationToResponse(res, seat, timeslot))
	}
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, userID uuid.UUID, reservationID string) error {
	resID, err := uuid.Parse(reservationID)
	if err != nil {
		return ErrReservationNotFound
	}

	cancelled, err := s.repo.Reservation.CancelConfirmed(ctx, resID, userID)
	if err != nil {
		return fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}
	if !cancelled {
		return ErrReservationNotFound
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (s *reservationService) Verify(ctx context.Context) (*response.VerifyResponse, error) {
	seatCount, err := s.repo.Seat.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count seats: %w", err)
	}

	slotCount, err := s.repo.Timeslot.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count timeslots: %w", err)
	}

	activeCount, err := s.repo.Reservation.CountConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	managers, err := s.repo.Manager.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	charges, err := s.repo.Charge.FindRecent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("list recent charges: %w", err)
	}

	resp := &response.VerifyResponse{
		Status:             "operational",
		Seats:              seatCount,
		Timeslots:          slotCount,
		ActiveReservations: activeCount,
		Managers:           make([]response.ManagerBriefResponse, 0, len(managers)),
		RecentCharges:      make([]response.ChargeResponse, 0, len(charges)),
	}
	for _, m := range managers {
		resp.Managers = append(resp.Managers, response.ManagerBriefResponse{
			Name:    m.ManagerName,
			Balance: m.Balance,
		})
	}
	for _, c := range charges {
		resp.RecentCharges = append(resp.RecentCharges, response.ChargeDetailToResponse(c))
	}
	return resp, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
