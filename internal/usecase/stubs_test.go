package usecase

import (
	"context"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hand-written fakes over the repository interfaces. Each method delegates to
// an optional func field and returns zero values otherwise, so tests only
// wire what they exercise.

type fakeUserRepo struct {
	upsertFn   func(ctx context.Context, user *entity.User) (*entity.User, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, user)
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmployeeUID(ctx context.Context, employeeUID string) (*entity.User, error) {
	return nil, nil
}

type fakeManagerRepo struct {
	getOrCreateFn   func(ctx context.Context, managerName string, defaultBalance float64) (*entity.Manager, error)
	findAllFn       func(ctx context.Context) ([]*entity.Manager, error)
	resetBalancesFn func(ctx context.Context, balance float64) (int64, error)
	lowestFn        func(ctx context.Context) (*entity.Manager, error)
}

func (f *fakeManagerRepo) GetOrCreate(ctx context.Context, managerName string, defaultBalance float64) (*entity.Manager, error) {
	if f.getOrCreateFn != nil {
		return f.getOrCreateFn(ctx, managerName, defaultBalance)
	}
	return nil, nil
}

func (f *fakeManagerRepo) FindByName(ctx context.Context, managerName string) (*entity.Manager, error) {
	return nil, nil
}

func (f *fakeManagerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Manager, error) {
	return nil, nil
}

func (f *fakeManagerRepo) FindAll(ctx context.Context) ([]*entity.Manager, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeManagerRepo) Create(ctx context.Context, manager *entity.Manager) error {
	return nil
}

func (f *fakeManagerRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeManagerRepo) FindLowestBalance(ctx context.Context) (*entity.Manager, error) {
	if f.lowestFn != nil {
		return f.lowestFn(ctx)
	}
	return nil, nil
}

func (f *fakeManagerRepo) ResetBalances(ctx context.Context, balance float64) (int64, error) {
	if f.resetBalancesFn != nil {
		return f.resetBalancesFn(ctx, balance)
	}
	return 0, nil
}

type fakeSeatRepo struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	findAllFn  func(ctx context.Context) ([]*entity.Seat, error)
	countFn    func(ctx context.Context) (int64, error)
}

func (f *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	return nil
}

func (f *fakeSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeSeatRepo) FindAll(ctx context.Context) ([]*entity.Seat, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeSeatRepo) Count(ctx context.Context) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return 0, nil
}

type fakeTimeslotRepo struct {
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error)
	findByRangeFn func(ctx context.Context, from, to time.Time) ([]*entity.Timeslot, error)
}

func (f *fakeTimeslotRepo) CreateBatch(ctx context.Context, timeslots []*entity.Timeslot) error {
	return nil
}

func (f *fakeTimeslotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeTimeslotRepo) FindByRange(ctx context.Context, from, to time.Time) ([]*entity.Timeslot, error) {
	if f.findByRangeFn != nil {
		return f.findByRangeFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakeTimeslotRepo) CountFrom(ctx context.Context, from time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeTimeslotRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeReservationRepo struct {
	admitFn                   func(ctx context.Context, params repository.AdmitParams) error
	findConfirmedByTimeslotFn func(ctx context.Context, timeslotID uuid.UUID) ([]*entity.Reservation, error)
	findBySeatTimeslotFn      func(ctx context.Context, seatID, timeslotID uuid.UUID) (*entity.Reservation, error)
	findConfirmedByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error)
	countConfirmedByUserFn    func(ctx context.Context, userID uuid.UUID) (int64, error)
	cancelConfirmedFn         func(ctx context.Context, reservationID, userID uuid.UUID) (bool, error)
	cancelAllConfirmedFn      func(ctx context.Context) (int64, error)
	countConfirmedFn          func(ctx context.Context) (int64, error)
	countCreatedBetweenFn     func(ctx context.Context, from, to time.Time) (int64, error)
	findLiveDetailedFn        func(ctx context.Context, now time.Time) ([]*repository.ReservationDetail, error)
	findDetailedByTimeslotsFn func(ctx context.Context, timeslotIDs []uuid.UUID) ([]*repository.ReservationDetail, error)
	listSeatOccupancyFn       func(ctx context.Context, now time.Time) ([]*repository.SeatOccupancy, error)
	mostBookedSeatsFn         func(ctx context.Context, limit int) ([]*repository.SeatBookingCount, error)
}

func (f *fakeReservationRepo) Admit(ctx context.Context, params repository.AdmitParams) error {
	if f.admitFn != nil {
		return f.admitFn(ctx, params)
	}
	return nil
}

func (f *fakeReservationRepo) FindConfirmedByTimeslot(ctx context.Context, timeslotID uuid.UUID) ([]*entity.Reservation, error) {
	if f.findConfirmedByTimeslotFn != nil {
		return f.findConfirmedByTimeslotFn(ctx, timeslotID)
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindConfirmedBySeatTimeslot(ctx context.Context, seatID, timeslotID uuid.UUID) (*entity.Reservation, error) {
	if f.findBySeatTimeslotFn != nil {
		return f.findBySeatTimeslotFn(ctx, seatID, timeslotID)
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindConfirmedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	if f.findConfirmedByUserFn != nil {
		return f.findConfirmedByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeReservationRepo) CountConfirmedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if f.countConfirmedByUserFn != nil {
		return f.countConfirmedByUserFn(ctx, userID)
	}
	return 0, nil
}

func (f *fakeReservationRepo) CountConfirmed(ctx context.Context) (int64, error) {
	if f.countConfirmedFn != nil {
		return f.countConfirmedFn(ctx)
	}
	return 0, nil
}

func (f *fakeReservationRepo) CountConfirmedCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if f.countCreatedBetweenFn != nil {
		return f.countCreatedBetweenFn(ctx, from, to)
	}
	return 0, nil
}

func (f *fakeReservationRepo) CancelConfirmed(ctx context.Context, reservationID, userID uuid.UUID) (bool, error) {
	if f.cancelConfirmedFn != nil {
		return f.cancelConfirmedFn(ctx, reservationID, userID)
	}
	return false, nil
}

func (f *fakeReservationRepo) CancelAllConfirmed(ctx context.Context) (int64, error) {
	if f.cancelAllConfirmedFn != nil {
		return f.cancelAllConfirmedFn(ctx)
	}
	return 0, nil
}

func (f *fakeReservationRepo) FindLiveDetailed(ctx context.Context, now time.Time) ([]*repository.ReservationDetail, error) {
	if f.findLiveDetailedFn != nil {
		return f.findLiveDetailedFn(ctx, now)
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindConfirmedDetailedByTimeslots(ctx context.Context, timeslotIDs []uuid.UUID) ([]*repository.ReservationDetail, error) {
	if f.findDetailedByTimeslotsFn != nil {
		return f.findDetailedByTimeslotsFn(ctx, timeslotIDs)
	}
	return nil, nil
}

func (f *fakeReservationRepo) ListSeatOccupancy(ctx context.Context, now time.Time) ([]*repository.SeatOccupancy, error) {
	if f.listSeatOccupancyFn != nil {
		return f.listSeatOccupancyFn(ctx, now)
	}
	return nil, nil
}

func (f *fakeReservationRepo) MostBookedSeats(ctx context.Context, limit int) ([]*repository.SeatBookingCount, error) {
	if f.mostBookedSeatsFn != nil {
		return f.mostBookedSeatsFn(ctx, limit)
	}
	return nil, nil
}

type fakeChargeRepo struct {
	findRecentFn  func(ctx context.Context, limit int) ([]*repository.ChargeDetail, error)
	totalAmountFn func(ctx context.Context) (float64, error)
	mostChargedFn func(ctx context.Context, limit int) ([]*repository.ManagerSpend, error)
}

func (f *fakeChargeRepo) FindRecent(ctx context.Context, limit int) ([]*repository.ChargeDetail, error) {
	if f.findRecentFn != nil {
		return f.findRecentFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeChargeRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeChargeRepo) TotalAmount(ctx context.Context) (float64, error) {
	if f.totalAmountFn != nil {
		return f.totalAmountFn(ctx)
	}
	return 0, nil
}

func (f *fakeChargeRepo) MostCharged(ctx context.Context, limit int) ([]*repository.ManagerSpend, error) {
	if f.mostChargedFn != nil {
		return f.mostChargedFn(ctx, limit)
	}
	return nil, nil
}

type fakeSessionRepo struct {
	createFn    func(ctx context.Context, session *entity.Session) error
	findValidFn func(ctx context.Context, token uuid.UUID, now time.Time) (*entity.Session, error)
	revokeFn    func(ctx context.Context, token uuid.UUID, now time.Time) (bool, error)
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if f.createFn != nil {
		return f.createFn(ctx, session)
	}
	return nil
}

func (f *fakeSessionRepo) FindValid(ctx context.Context, token uuid.UUID, now time.Time) (*entity.Session, error) {
	if f.findValidFn != nil {
		return f.findValidFn(ctx, token, now)
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token uuid.UUID, now time.Time) (bool, error) {
	if f.revokeFn != nil {
		return f.revokeFn(ctx, token, now)
	}
	return true, nil
}

func (f *fakeSessionRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	return 0, nil
}

// newTestRepository builds a Repository from fakes, defaulting any nil field.
func newTestRepository(
	user *fakeUserRepo,
	manager *fakeManagerRepo,
	seat *fakeSeatRepo,
	timeslot *fakeTimeslotRepo,
	reservation *fakeReservationRepo,
	charge *fakeChargeRepo,
	session *fakeSessionRepo,
) *repository.Repository {
	if user == nil {
		user = &fakeUserRepo{}
	}
	if manager == nil {
		manager = &fakeManagerRepo{}
	}
	if seat == nil {
		seat = &fakeSeatRepo{}
	}
	if timeslot == nil {
		timeslot = &fakeTimeslotRepo{}
	}
	if reservation == nil {
		reservation = &fakeReservationRepo{}
	}
	if charge == nil {
		charge = &fakeChargeRepo{}
	}
	if session == nil {
		session = &fakeSessionRepo{}
	}
	return &repository.Repository{
		User:        user,
		Manager:     manager,
		Seat:        seat,
		Timeslot:    timeslot,
		Reservation: reservation,
		Charge:      charge,
		Session:     session,
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
