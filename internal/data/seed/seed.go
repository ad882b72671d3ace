// Package seed populates an empty database with the fixed seat grid, the
// lunch timeslots for today and tomorrow, and the manager roster. Every step
// is guarded by a count so restarts are harmless.
package seed

import (
	"context"
	"fmt"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	seatRows    = 10
	seatsPerRow = 10

	slotsPerDay  = 6
	slotDuration = 30 * time.Minute
	lunchHour    = 12

	managerCount       = 10
	managerBalance     = 100000.00
	zeroBalanceManager = "Manager with 0 points"
	adminManager       = "Admin"
	adminBalance       = 50000.00
)

// GenerateSeats builds the 10x10 grid A1..J10.
func GenerateSeats(now time.Time) []*entity.Seat {
	seats := make([]*entity.Seat, 0, seatRows*seatsPerRow)
	for row := 0; row < seatRows; row++ {
		rowLabel := string(rune('A' + row))
		for num := 1; num <= seatsPerRow; num++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				Label:      fmt.Sprintf("%s%d", rowLabel, num),
				RowLabel:   rowLabel,
				SeatNumber: num,
			})
		}
	}
	return seats
}

// GenerateTimeslots builds the lunch slots for today and tomorrow: six
// 30-minute windows from 12:00 to 15:00 per day, in now's location.
func GenerateTimeslots(now time.Time) []*entity.Timeslot {
	timeslots := make([]*entity.Timeslot, 0, 2*slotsPerDay)
	for dayOffset := 0; dayOffset < 2; dayOffset++ {
		day := now.AddDate(0, 0, dayOffset)
		start := time.Date(day.Year(), day.Month(), day.Day(), lunchHour, 0, 0, 0, now.Location())
		for slot := 0; slot < slotsPerDay; slot++ {
			startsAt := start.Add(time.Duration(slot) * slotDuration)
			timeslots = append(timeslots, &entity.Timeslot{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				StartsAt: startsAt,
				EndsAt:   startsAt.Add(slotDuration),
			})
		}
	}
	return timeslots
}

// GenerateManagers builds the default roster: ten funded managers, one with
// an empty balance for exercising the payment path, and the admin account.
func GenerateManagers(now time.Time) []*entity.Manager {
	managers := make([]*entity.Manager, 0, managerCount+2)
	for i := 1; i <= managerCount; i++ {
		managers = append(managers, newManager(fmt.Sprintf("Manager %d", i), managerBalance, now))
	}
	managers = append(managers, newManager(zeroBalanceManager, 0.00, now))
	managers = append(managers, newManager(adminManager, adminBalance, now))
	return managers
}

func newManager(name string, balance float64, now time.Time) *entity.Manager {
	return &entity.Manager{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ManagerName: name,
		Balance:     balance,
	}
}

// Run seeds seats, timeslots and managers. Seats and managers are seeded only
// when their tables are empty; timeslots only when no slot starts today or
// later, so each day's first boot extends the schedule.
func Run(ctx context.Context, repo *repository.Repository, clock clockwork.Clock, log *zap.Logger) error {
	log = log.With(zap.String("component", "seed"))
	now := clock.Now()

	seatCount, err := repo.Seat.Count(ctx)
	if err != nil {
		return fmt.Errorf("count seats: %w", err)
	}
	if seatCount == 0 {
		seats := GenerateSeats(now)
		if err := repo.Seat.CreateBatch(ctx, seats); err != nil {
			return fmt.Errorf("seed seats: %w", err)
		}
		log.Info("Seeded seats", zap.Int("count", len(seats)))
	} else {
		log.Info("Seats already exist", zap.Int64("count", seatCount))
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	slotCount, err := repo.Timeslot.CountFrom(ctx, startOfToday)
	if err != nil {
		return fmt.Errorf("count timeslots: %w", err)
	}
	if slotCount == 0 {
		timeslots := GenerateTimeslots(now)
		if err := repo.Timeslot.CreateBatch(ctx, timeslots); err != nil {
			return fmt.Errorf("seed timeslots: %w", err)
		}
		log.Info("Seeded timeslots", zap.Int("count", len(timeslots)))
	} else {
		log.Info("Timeslots already exist", zap.Int64("count", slotCount))
	}

	managerTotal, err := repo.Manager.Count(ctx)
	if err != nil {
		return fmt.Errorf("count managers: %w", err)
	}
	if managerTotal == 0 {
		managers := GenerateManagers(now)
		for _, m := range managers {
			if err := repo.Manager.Create(ctx, m); err != nil {
				return fmt.Errorf("seed manager %s: %w", m.ManagerName, err)
			}
		}
		log.Info("Seeded managers", zap.Int("count", len(managers)))
	} else {
		log.Info("Managers already exist", zap.Int64("count", managerTotal))
	}

	return nil
}
