package repository

import (
	"context"
	"fmt"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TimeslotRepository interface {
	CreateBatch(ctx context.Context, timeslots []*entity.Timeslot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error)
	// FindByRange returns timeslots starting within [from, to), ordered by
	// start time.
	FindByRange(ctx context.Context, from, to time.Time) ([]*entity.Timeslot, error)
	CountFrom(ctx context.Context, from time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type timeslotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTimeslotRepository(db database.PgxIface, log *zap.Logger) TimeslotRepository {
	return &timeslotRepository{
		db:  db,
		log: log.With(zap.String("repository", "timeslot")),
	}
}

func (r *timeslotRepository) CreateBatch(ctx context.Context, timeslots []*entity.Timeslot) error {
	if len(timeslots) == 0 {
		return nil
	}

	query := `INSERT INTO timeslots (id, starts_at, ends_at, created_at) VALUES `
	args := []interface{}{}

	for i, slot := range timeslots {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d)",
			i*4+1, i*4+2, i*4+3, i*4+4)

		args = append(args,
			slot.ID,
			slot.StartsAt,
			slot.EndsAt,
			slot.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch timeslots",
			zap.Error(err),
			zap.Int("count", len(timeslots)),
		)
		return fmt.Errorf("create batch timeslots: %w", err)
	}

	return nil
}

func (r *timeslotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
	query := `
		SELECT id, starts_at, ends_at, created_at
		FROM timeslots
		WHERE id = $1
	`

	var slot entity.Timeslot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.StartsAt,
		&slot.EndsAt,
		&slot.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find timeslot by ID",
			zap.Error(err),
			zap.String("timeslot_id", id.String()),
		)
		return nil, fmt.Errorf("find timeslot by ID %s: %w", id.String(), err)
	}

	return &slot, nil
}

func (r *timeslotRepository) FindByRange(ctx context.Context, from, to time.Time) ([]*entity.Timeslot, error) {
	query := `
		SELECT id, starts_at, ends_at, created_at
		FROM timeslots
		WHERE starts_at >= $1 AND starts_at < $2
		ORDER BY starts_at
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find timeslots by range",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find timeslots by range: %w", err)
	}
	defer rows.Close()

	var timeslots []*entity.Timeslot
	for rows.Next() {
		var slot entity.Timeslot
		err := rows.Scan(
			&slot.ID,
			&slot.StartsAt,
			&slot.EndsAt,
			&slot.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan timeslot row", zap.Error(err))
			return nil, fmt.Errorf("scan timeslot row: %w", err)
		}
		timeslots = append(timeslots, &slot)
	}

	return timeslots, nil
}

func (r *timeslotRepository) CountFrom(ctx context.Context, from time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM timeslots WHERE starts_at >= $1`, from).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count timeslots", zap.Error(err))
		return 0, fmt.Errorf("count timeslots from %s: %w", from, err)
	}
	return count, nil
}

func (r *timeslotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM timeslots`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count timeslots", zap.Error(err))
		return 0, fmt.Errorf("count timeslots: %w", err)
	}
	return count, nil
}
