package usecase

import (
	"context"
	"testing"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 16, 12, 10, 0, 0, time.UTC)

func seatFixture(id uuid.UUID, label string) *entity.Seat {
	return &entity.Seat{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: testTime},
		Label:      label,
		RowLabel:   label[:1],
		SeatNumber: 1,
	}
}

func timeslotFixture(id uuid.UUID) *entity.Timeslot {
	return &entity.Timeslot{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: testTime},
		StartsAt:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2025, 6, 16, 12, 30, 0, 0, time.UTC),
	}
}

func userFixture(id uuid.UUID, managerName string) *entity.User {
	return &entity.User{
		Base:        entity.Base{ID: id, CreatedAt: testTime, UpdatedAt: testTime},
		EmployeeUID: "emp-001",
		Email:       "dev@example.com",
		ManagerName: managerName,
	}
}

func TestCreateReservation(t *testing.T) {
	userID := uuid.New()
	seatID := uuid.New()
	slotID := uuid.New()
	managerID := uuid.New()

	validReq := &request.CreateReservationRequest{
		SeatID:     seatID.String(),
		TimeslotID: slotID.String(),
	}

	tests := []struct {
		name        string
		req         *request.CreateReservationRequest
		seat        *fakeSeatRepo
		timeslot    *fakeTimeslotRepo
		user        *fakeUserRepo
		manager     *fakeManagerRepo
		reservation *fakeReservationRepo
		wantErr     error
	}{
		{
			name:    "seat does not exist",
			req:     validReq,
			seat:    &fakeSeatRepo{},
			wantErr: ErrSeatNotFound,
		},
		{
			name: "timeslot does not exist",
			req:  validReq,
			seat: &fakeSeatRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
					return seatFixture(seatID, "A1"), nil
				},
			},
			timeslot: &fakeTimeslotRepo{},
			wantErr:  ErrTimeslotNotFound,
		},
		{
			name: "booking limit reached",
			req:  validReq,
			seat: &fakeSeatRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
					return seatFixture(seatID, "A1"), nil
				},
			},
			timeslot: &fakeTimeslotRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
					return timeslotFixture(slotID), nil
				},
			},
			reservation: &fakeReservationRepo{
				countConfirmedByUserFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
					return 2, nil
				},
			},
			wantErr: ErrBookingLimit,
		},
		{
			name: "seat held by someone else",
			req:  validReq,
			seat: &fakeSeatRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
					return seatFixture(seatID, "A1"), nil
				},
			},
			timeslot: &fakeTimeslotRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
					return timeslotFixture(slotID), nil
				},
			},
			reservation: &fakeReservationRepo{
				findBySeatTimeslotFn: func(ctx context.Context, sID, tID uuid.UUID) (*entity.Reservation, error) {
					holdUntil := testTime.Add(3 * time.Minute)
					return &entity.Reservation{
						BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: testTime},
						UserID:      uuid.New(),
						SeatID:      sID,
						TimeslotID:  tID,
						Status:      entity.ReservationStatusConfirmed,
						AvailableAt: &holdUntil,
					}, nil
				},
			},
			wantErr: ErrSeatTaken,
		},
		{
			name: "user without manager",
			req:  validReq,
			seat: &fakeSeatRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
					return seatFixture(seatID, "A1"), nil
				},
			},
			timeslot: &fakeTimeslotRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
					return timeslotFixture(slotID), nil
				},
			},
			user: &fakeUserRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
					return userFixture(userID, ""), nil
				},
			},
			wantErr: ErrNoManager,
		},
		{
			name: "insufficient manager balance",
			req:  validReq,
			seat: &fakeSeatRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
					return seatFixture(seatID, "A1"), nil
				},
			},
			timeslot: &fakeTimeslotRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
					return timeslotFixture(slotID), nil
				},
			},
			user: &fakeUserRepo{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
					return userFixture(userID, "Manager with 0 points"), nil
				},
			},
			manager: &fakeManagerRepo{
				getOrCreateFn: func(ctx context.Context, name string, def float64) (*entity.Manager, error) {
					return &entity.Manager{
						Base:        entity.Base{ID: managerID},
						ManagerName: name,
						Balance:     0,
					}, nil
				},
			},
			wantErr: repository.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClockAt(testTime)
			repo := newTestRepository(tt.user, tt.manager, tt.seat, tt.timeslot, tt.reservation, nil, nil)
			svc := NewReservationService(repo, clock, testLogger())

			_, err := svc.Create(context.Background(), userID, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateReservationSuccess(t *testing.T) {
	userID := uuid.New()
	seatID := uuid.New()
	slotID := uuid.New()
	managerID := uuid.New()

	var admitted repository.AdmitParams

	repo := newTestRepository(
		&fakeUserRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return userFixture(userID, "Manager 1"), nil
			},
		},
		&fakeManagerRepo{
			getOrCreateFn: func(ctx context.Context, name string, def float64) (*entity.Manager, error) {
				assert.Equal(t, "Manager 1", name)
				assert.Equal(t, DefaultManagerBalance, def)
				return &entity.Manager{
					Base:        entity.Base{ID: managerID},
					ManagerName: name,
					Balance:     100000,
				}, nil
			},
		},
		&fakeSeatRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
				return seatFixture(seatID, "B7"), nil
			},
		},
		&fakeTimeslotRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
				return timeslotFixture(slotID), nil
			},
		},
		&fakeReservationRepo{
			admitFn: func(ctx context.Context, params repository.AdmitParams) error {
				admitted = params
				return nil
			},
		},
		nil, nil,
	)

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(repo, clock, testLogger())

	resp, err := svc.Create(context.Background(), userID, &request.CreateReservationRequest{
		SeatID:     seatID.String(),
		TimeslotID: slotID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	res := admitted.Reservation
	require.NotNil(t, res)
	assert.Equal(t, userID, res.UserID)
	assert.Equal(t, seatID, res.SeatID)
	assert.Equal(t, slotID, res.TimeslotID)
	assert.Equal(t, entity.ReservationStatusConfirmed, res.Status)
	require.NotNil(t, res.AvailableAt)
	assert.Equal(t, testTime.Add(HoldDuration), *res.AvailableAt)
	assert.Equal(t, managerID, admitted.ManagerID)
	assert.Equal(t, ReservationFee, admitted.Fee)
	assert.Equal(t, testTime, admitted.Now)

	assert.Equal(t, res.ID.String(), resp.ID)
	assert.Equal(t, string(entity.ReservationStatusConfirmed), string(resp.Status))
	require.NotNil(t, resp.Seat)
	assert.Equal(t, "B7", resp.Seat.Label)
	require.NotNil(t, resp.Timeslot)
}

func TestCreateReservationExpiredHoldDoesNotBlock(t *testing.T) {
	userID := uuid.New()
	seatID := uuid.New()
	slotID := uuid.New()

	repo := newTestRepository(
		&fakeUserRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return userFixture(userID, "Manager 2"), nil
			},
		},
		&fakeManagerRepo{
			getOrCreateFn: func(ctx context.Context, name string, def float64) (*entity.Manager, error) {
				return &entity.Manager{Base: entity.Base{ID: uuid.New()}, ManagerName: name, Balance: 500}, nil
			},
		},
		&fakeSeatRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
				return seatFixture(seatID, "C3"), nil
			},
		},
		&fakeTimeslotRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
				return timeslotFixture(slotID), nil
			},
		},
		&fakeReservationRepo{
			findBySeatTimeslotFn: func(ctx context.Context, sID, tID uuid.UUID) (*entity.Reservation, error) {
				expired := testTime.Add(-time.Minute)
				return &entity.Reservation{
					BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: testTime.Add(-10 * time.Minute)},
					UserID:      uuid.New(),
					SeatID:      sID,
					TimeslotID:  tID,
					Status:      entity.ReservationStatusConfirmed,
					AvailableAt: &expired,
				}, nil
			},
		},
		nil, nil,
	)

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(repo, clock, testLogger())

	resp, err := svc.Create(context.Background(), userID, &request.CreateReservationRequest{
		SeatID:     seatID.String(),
		TimeslotID: slotID.String(),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestCreateReservationRaceLost(t *testing.T) {
	userID := uuid.New()
	seatID := uuid.New()
	slotID := uuid.New()

	repo := newTestRepository(
		&fakeUserRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return userFixture(userID, "Manager 3"), nil
			},
		},
		&fakeManagerRepo{
			getOrCreateFn: func(ctx context.Context, name string, def float64) (*entity.Manager, error) {
				return &entity.Manager{Base: entity.Base{ID: uuid.New()}, ManagerName: name, Balance: 500}, nil
			},
		},
		&fakeSeatRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
				return seatFixture(seatID, "D4"), nil
			},
		},
		&fakeTimeslotRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
				return timeslotFixture(slotID), nil
			},
		},
		&fakeReservationRepo{
			admitFn: func(ctx context.Context, params repository.AdmitParams) error {
				return repository.ErrDuplicateReservation
			},
		},
		nil, nil,
	)

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(repo, clock, testLogger())

	_, err := svc.Create(context.Background(), userID, &request.CreateReservationRequest{
		SeatID:     seatID.String(),
		TimeslotID: slotID.String(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicateReservation)
}

func TestCreateReservationValidation(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(newTestRepository(nil, nil, nil, nil, nil, nil, nil), clock, testLogger())

	_, err := svc.Create(context.Background(), uuid.New(), &request.CreateReservationRequest{
		SeatID:     "not-a-uuid",
		TimeslotID: "",
	})
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestListSeatsAvailabilityFollowsHoldTimer(t *testing.T) {
	slotID := uuid.New()
	me := uuid.New()

	seatHeld := seatFixture(uuid.New(), "A1")
	seatExpired := seatFixture(uuid.New(), "A2")
	seatMine := seatFixture(uuid.New(), "A3")
	seatFree := seatFixture(uuid.New(), "A4")

	holdUntil := testTime.Add(2 * time.Minute)
	expiredAt := testTime.Add(-2 * time.Minute)

	repo := newTestRepository(nil, nil,
		&fakeSeatRepo{
			findAllFn: func(ctx context.Context) ([]*entity.Seat, error) {
				return []*entity.Seat{seatHeld, seatExpired, seatMine, seatFree}, nil
			},
		},
		&fakeTimeslotRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
				return timeslotFixture(slotID), nil
			},
		},
		&fakeReservationRepo{
			findConfirmedByTimeslotFn: func(ctx context.Context, id uuid.UUID) ([]*entity.Reservation, error) {
				return []*entity.Reservation{
					{
						BaseSimple:  entity.BaseSimple{ID: uuid.New()},
						UserID:      uuid.New(),
						SeatID:      seatHeld.ID,
						TimeslotID:  slotID,
						Status:      entity.ReservationStatusConfirmed,
						AvailableAt: &holdUntil,
					},
					{
						BaseSimple:  entity.BaseSimple{ID: uuid.New()},
						UserID:      uuid.New(),
						SeatID:      seatExpired.ID,
						TimeslotID:  slotID,
						Status:      entity.ReservationStatusConfirmed,
						AvailableAt: &expiredAt,
					},
					{
						BaseSimple:  entity.BaseSimple{ID: uuid.New()},
						UserID:      me,
						SeatID:      seatMine.ID,
						TimeslotID:  slotID,
						Status:      entity.ReservationStatusConfirmed,
						AvailableAt: &holdUntil,
					},
				}, nil
			},
		},
		nil, nil,
	)

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(repo, clock, testLogger())

	seats, err := svc.ListSeats(context.Background(), slotID.String(), me)
	require.NoError(t, err)
	require.Len(t, seats, 4)

	byLabel := make(map[string]struct {
		available bool
		mine      bool
	})
	for _, s := range seats {
		byLabel[s.Label] = struct {
			available bool
			mine      bool
		}{s.Available, s.Mine}
	}

	assert.False(t, byLabel["A1"].available)
	assert.True(t, byLabel["A2"].available, "expired hold frees the seat")
	assert.False(t, byLabel["A3"].available)
	assert.True(t, byLabel["A3"].mine)
	assert.True(t, byLabel["A4"].available)
	assert.False(t, byLabel["A1"].mine)
}

func TestListTimeslotsDateWindow(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{name: "garbage date", date: "16-06-2025", wantErr: ErrInvalidDate},
		{name: "yesterday", date: "2025-06-15", wantErr: ErrDateOutOfRange},
		{name: "day after tomorrow", date: "2025-06-18", wantErr: ErrDateOutOfRange},
	}

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(newTestRepository(nil, nil, nil, nil, nil, nil, nil), clock, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListTimeslots(context.Background(), tt.date)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListTimeslotsTodayAndTomorrow(t *testing.T) {
	slots := []*entity.Timeslot{timeslotFixture(uuid.New()), timeslotFixture(uuid.New())}

	var gotFrom, gotTo time.Time
	repo := newTestRepository(nil, nil, nil,
		&fakeTimeslotRepo{
			findByRangeFn: func(ctx context.Context, from, to time.Time) ([]*entity.Timeslot, error) {
				gotFrom, gotTo = from, to
				return slots, nil
			},
		},
		nil, nil, nil,
	)

	clock := clockwork.NewFakeClockAt(testTime)
	svc := NewReservationService(repo, clock, testLogger())

	result, err := svc.ListTimeslots(context.Background(), "2025-06-17")
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), gotTo)
}

func TestCancelReservation(t *testing.T) {
	userID := uuid.New()
	resID := uuid.New()

	t.Run("cancels own reservation", func(t *testing.T) {
		repo := newTestRepository(nil, nil, nil, nil,
			&fakeReservationRepo{
				cancelConfirmedFn: func(ctx context.Context, rID, uID uuid.UUID) (bool, error) {
					assert.Equal(t, resID, rID)
					assert.Equal(t, userID, uID)
					return true, nil
				},
			},
			nil, nil,
		)
		svc := NewReservationService(repo, clockwork.NewFakeClockAt(testTime), testLogger())

		err := svc.Cancel(context.Background(), userID, resID.String())
		assert.NoError(t, err)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc := NewReservationService(newTestRepository(nil, nil, nil, nil, nil, nil, nil), clockwork.NewFakeClockAt(testTime), testLogger())

		err := svc.Cancel(context.Background(), userID, resID.String())
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
