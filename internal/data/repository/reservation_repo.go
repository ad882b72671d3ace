package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// AdmitParams carries everything the admission commit needs. The reservation
// must already be fully populated (ID, status, available_at); Fee is debited
// from the manager and recorded as a charge in the same transaction.
type AdmitParams struct {
	Reservation *entity.Reservation
	ManagerID   uuid.UUID
	Fee         float64
	Now         time.Time
}

// ReservationDetail is a reservation joined with its user, seat and timeslot
// for reporting surfaces.
type ReservationDetail struct {
	ID          uuid.UUID
	UserEmail   string
	UserName    string
	ManagerName string
	SeatLabel   string
	TimeslotID  uuid.UUID
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	AvailableAt *time.Time
}

// SeatOccupancy reports live holds per seat.
type SeatOccupancy struct {
	SeatID             uuid.UUID
	Label              string
	ActiveReservations int64
}

// SeatBookingCount is an all-time CONFIRMED booking tally per seat.
type SeatBookingCount struct {
	Label    string
	Bookings int64
}

type ReservationRepository interface {
	// Admit commits a validated booking atomically: lapse timer-expired
	// holds on the target seat/timeslot and the user's own expired hold in
	// that timeslot, insert the CONFIRMED reservation, debit the manager
	// with a balance guard, insert the charge. A unique-index violation is
	// returned as ErrDuplicateReservation, a failed balance guard as
	// ErrInsufficientBalance; both leave the store untouched.
	Admit(ctx context.Context, params AdmitParams) error

	FindConfirmedByTimeslot(ctx context.Context, timeslotID uuid.UUID) ([]*entity.Reservation, error)
	FindConfirmedBySeatTimeslot(ctx context.Context, seatID, timeslotID uuid.UUID) (*entity.Reservation, error)
	FindConfirmedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error)
	CountConfirmedByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountConfirmed(ctx context.Context) (int64, error)
	CountConfirmedCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// CancelConfirmed flips one of the user's CONFIRMED reservations to
	// CANCELLED; it reports false when no such reservation exists.
	CancelConfirmed(ctx context.Context, reservationID, userID uuid.UUID) (bool, error)
	// CancelAllConfirmed is the administrative reset path.
	CancelAllConfirmed(ctx context.Context) (int64, error)

	// Reporting joins
	FindLiveDetailed(ctx context.Context, now time.Time) ([]*ReservationDetail, error)
	FindConfirmedDetailedByTimeslots(ctx context.Context, timeslotIDs []uuid.UUID) ([]*ReservationDetail, error)
	ListSeatOccupancy(ctx context.Context, now time.Time) ([]*SeatOccupancy, error)
	MostBookedSeats(ctx context.Context, limit int) ([]*SeatBookingCount, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *reservationRepository) Admit(ctx context.Context, params AdmitParams) error {
	res := params.Reservation

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin admission tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Expired holds are lapsed first so the partial unique indexes only
	// track live holds. Without this, a stale CONFIRMED row would block the
	// insert for a seat the availability view already shows as free.
	lapse := `
		UPDATE reservations
		SET status = $1
		WHERE status = $2
		  AND available_at IS NOT NULL AND available_at <= $3
		  AND timeslot_id = $4
		  AND (seat_id = $5 OR user_id = $6)
	`
	_, err = tx.Exec(ctx, lapse,
		entity.ReservationStatusCancelled,
		entity.ReservationStatusConfirmed,
		params.Now,
		res.TimeslotID,
		res.SeatID,
		res.UserID,
	)
	if err != nil {
		return fmt.Errorf("lapse expired holds: %w", err)
	}

	insertReservation := `
		INSERT INTO reservations (id, user_id, seat_id, timeslot_id, status, available_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, insertReservation,
		res.ID,
		res.UserID,
		res.SeatID,
		res.TimeslotID,
		res.Status,
		res.AvailableAt,
		res.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// A racing admission won the unique index. Expected outcome,
			// not a storage failure.
			r.log.Warn("Admission lost reservation race",
				zap.String("seat_id", res.SeatID.String()),
				zap.String("timeslot_id", res.TimeslotID.String()),
				zap.String("user_id", res.UserID.String()),
			)
			return ErrDuplicateReservation
		}
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("reservation_id", res.ID.String()),
		)
		return fmt.Errorf("insert reservation %s: %w", res.ID.String(), err)
	}

	// The guard in the WHERE clause closes the check-then-debit race: the
	// row lock taken here serializes concurrent debits against the same
	// manager, and a stale pre-check simply affects zero rows.
	debit := `
		UPDATE managers
		SET balance = balance - $2, updated_at = $3
		WHERE id = $1 AND balance >= $2
	`
	result, err := tx.Exec(ctx, debit, params.ManagerID, params.Fee, params.Now)
	if err != nil {
		r.log.Error("Failed to debit manager",
			zap.Error(err),
			zap.String("manager_id", params.ManagerID.String()),
		)
		return fmt.Errorf("debit manager %s: %w", params.ManagerID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}

	insertCharge := `
		INSERT INTO charges (id, manager_id, reservation_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.Exec(ctx, insertCharge,
		uuid.New(),
		params.ManagerID,
		res.ID,
		params.Fee,
		params.Now,
	)
	if err != nil {
		r.log.Error("Failed to insert charge",
			zap.Error(err),
			zap.String("reservation_id", res.ID.String()),
		)
		return fmt.Errorf("insert charge for reservation %s: %w", res.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReservation
		}
		return fmt.Errorf("commit admission tx: %w", err)
	}

	return nil
}

func (r *reservationRepository) FindConfirmedByTimeslot(ctx context.Context, timeslotID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, seat_id, timeslot_id, status, available_at, created_at
		FROM reservations
		WHERE timeslot_id = $1 AND status = $2
	`

	rows, err := r.db.Query(ctx, query, timeslotID, entity.ReservationStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to find reservations by timeslot",
			zap.Error(err),
			zap.String("timeslot_id", timeslotID.String()),
		)
		return nil, fmt.Errorf("find reservations by timeslot %s: %w", timeslotID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) FindConfirmedBySeatTimeslot(ctx context.Context, seatID, timeslotID uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, seat_id, timeslot_id, status, available_at, created_at
		FROM reservations
		WHERE seat_id = $1 AND timeslot_id = $2 AND status = $3
	`

	var res entity.Reservation
	err := r.db.QueryRow(ctx, query, seatID, timeslotID, entity.ReservationStatusConfirmed).Scan(
		&res.ID,
		&res.UserID,
		&res.SeatID,
		&res.TimeslotID,
		&res.Status,
		&res.AvailableAt,
		&res.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by seat and timeslot",
			zap.Error(err),
			zap.String("seat_id", seatID.String()),
			zap.String("timeslot_id", timeslotID.String()),
		)
		return nil, fmt.Errorf("find reservation by seat %s timeslot %s: %w",
			seatID.String(), timeslotID.String(), err)
	}

	return &res, nil
}

func (r *reservationRepository) FindConfirmedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, seat_id, timeslot_id, status, available_at, created_at
		FROM reservations
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, entity.ReservationStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to find reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) CountConfirmedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1 AND status = $2`

	var count int64
	err := r.db.QueryRow(ctx, query, userID, entity.ReservationStatusConfirmed).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) CountConfirmed(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE status = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, entity.ReservationStatusConfirmed).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count confirmed reservations", zap.Error(err))
		return 0, fmt.Errorf("count confirmed reservations: %w", err)
	}

	return count, nil
}

func (r *reservationRepository) CountConfirmedCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM reservations
		WHERE status = $1 AND created_at >= $2 AND created_at < $3
	`

	var count int64
	err := r.db.QueryRow(ctx, query, entity.ReservationStatusConfirmed, from, to).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by creation window", zap.Error(err))
		return 0, fmt.Errorf("count reservations created between %s and %s: %w", from, to, err)
	}

	return count, nil
}

func (r *reservationRepository) CancelConfirmed(ctx context.Context, reservationID, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $3
		WHERE id = $1 AND user_id = $2 AND status = $4
	`

	result, err := r.db.Exec(ctx, query,
		reservationID,
		userID,
		entity.ReservationStatusCancelled,
		entity.ReservationStatusConfirmed,
	)
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return false, fmt.Errorf("cancel reservation %s: %w", reservationID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) CancelAllConfirmed(ctx context.Context) (int64, error) {
	query := `UPDATE reservations SET status = $1 WHERE status = $2`

	result, err := r.db.Exec(ctx, query,
		entity.ReservationStatusCancelled,
		entity.ReservationStatusConfirmed,
	)
	if err != nil {
		r.log.Error("Failed to cancel all reservations", zap.Error(err))
		return 0, fmt.Errorf("cancel all reservations: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *reservationRepository) FindLiveDetailed(ctx context.Context, now time.Time) ([]*ReservationDetail, error) {
	query := `
		SELECT r.id, u.email, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), u.manager_name,
		       s.label, t.id, t.starts_at, t.ends_at, r.created_at, r.available_at
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		JOIN seats s ON s.id = r.seat_id
		JOIN timeslots t ON t.id = r.timeslot_id
		WHERE r.status = $1 AND (r.available_at IS NULL OR r.available_at > $2)
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, entity.ReservationStatusConfirmed, now)
	if err != nil {
		r.log.Error("Failed to find live reservations", zap.Error(err))
		return nil, fmt.Errorf("find live reservations: %w", err)
	}
	defer rows.Close()

	return scanReservationDetails(rows, r.log)
}

func (r *reservationRepository) FindConfirmedDetailedByTimeslots(ctx context.Context, timeslotIDs []uuid.UUID) ([]*ReservationDetail, error) {
	if len(timeslotIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT r.id, u.email, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), u.manager_name,
		       s.label, t.id, t.starts_at, t.ends_at, r.created_at, r.available_at
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		JOIN seats s ON s.id = r.seat_id
		JOIN timeslots t ON t.id = r.timeslot_id
		WHERE r.status = $1 AND r.timeslot_id = ANY($2)
		ORDER BY t.starts_at, r.created_at
	`

	rows, err := r.db.Query(ctx, query, entity.ReservationStatusConfirmed, timeslotIDs)
	if err != nil {
		r.log.Error("Failed to find reservations by timeslots",
			zap.Error(err),
			zap.Int("timeslot_count", len(timeslotIDs)),
		)
		return nil, fmt.Errorf("find reservations by timeslots: %w", err)
	}
	defer rows.Close()

	return scanReservationDetails(rows, r.log)
}

func (r *reservationRepository) ListSeatOccupancy(ctx context.Context, now time.Time) ([]*SeatOccupancy, error) {
	query := `
		SELECT s.id, s.label,
		       COUNT(r.id) FILTER (WHERE r.status = $1 AND (r.available_at IS NULL OR r.available_at > $2))
		FROM seats s
		LEFT JOIN reservations r ON r.seat_id = s.id
		GROUP BY s.id, s.label, s.row_label, s.seat_number
		ORDER BY s.row_label, s.seat_number
	`

	rows, err := r.db.Query(ctx, query, entity.ReservationStatusConfirmed, now)
	if err != nil {
		r.log.Error("Failed to list seat occupancy", zap.Error(err))
		return nil, fmt.Errorf("list seat occupancy: %w", err)
	}
	defer rows.Close()

	var occupancy []*SeatOccupancy
	for rows.Next() {
		var o SeatOccupancy
		if err := rows.Scan(&o.SeatID, &o.Label, &o.ActiveReservations); err != nil {
			r.log.Error("Failed to scan occupancy row", zap.Error(err))
			return nil, fmt.Errorf("scan occupancy row: %w", err)
		}
		occupancy = append(occupancy, &o)
	}

	return occupancy, nil
}

func (r *reservationRepository) MostBookedSeats(ctx context.Context, limit int) ([]*SeatBookingCount, error) {
	query := `
		SELECT s.label, COUNT(r.id)
		FROM seats s
		JOIN reservations r ON r.seat_id = s.id
		WHERE r.status = $1
		GROUP BY s.id, s.label
		ORDER BY COUNT(r.id) DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, entity.ReservationStatusConfirmed, limit)
	if err != nil {
		r.log.Error("Failed to list most booked seats", zap.Error(err))
		return nil, fmt.Errorf("list most booked seats: %w", err)
	}
	defer rows.Close()

	var counts []*SeatBookingCount
	for rows.Next() {
		var c SeatBookingCount
		if err := rows.Scan(&c.Label, &c.Bookings); err != nil {
			r.log.Error("Failed to scan seat booking count", zap.Error(err))
			return nil, fmt.Errorf("scan seat booking count: %w", err)
		}
		counts = append(counts, &c)
	}

	return counts, nil
}

func scanReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.SeatID,
			&res.TimeslotID,
			&res.Status,
			&res.AvailableAt,
			&res.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &res)
	}
	return reservations, nil
}

func scanReservationDetails(rows pgx.Rows, log *zap.Logger) ([]*ReservationDetail, error) {
	var details []*ReservationDetail
	for rows.Next() {
		var d ReservationDetail
		var firstName, lastName string
		err := rows.Scan(
			&d.ID,
			&d.UserEmail,
			&firstName,
			&lastName,
			&d.ManagerName,
			&d.SeatLabel,
			&d.TimeslotID,
			&d.StartsAt,
			&d.EndsAt,
			&d.CreatedAt,
			&d.AvailableAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation detail row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation detail row: %w", err)
		}
		d.UserName = joinName(firstName, lastName, d.UserEmail)
		details = append(details, &d)
	}
	return details, nil
}

// joinName builds a display name, falling back to the email.
func joinName(first, last, fallback string) string {
	name := first
	if last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	if name == "" {
		return fallback
	}
	return name
}
