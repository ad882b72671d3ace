package repository

import (
	"context"
	"fmt"
	"time"

	"cafeteria-booking/pkg/database"

	"go.uber.org/zap"
)

// ChargeDetail is a charge joined with its manager for reporting.
type ChargeDetail struct {
	ID          string
	ManagerName string
	Amount      float64
	CreatedAt   time.Time
}

// ManagerSpend is an aggregate of charges per manager.
type ManagerSpend struct {
	ManagerName string
	Charges     int64
	Total       float64
}

type ChargeRepository interface {
	FindRecent(ctx context.Context, limit int) ([]*ChargeDetail, error)
	Count(ctx context.Context) (int64, error)
	TotalAmount(ctx context.Context) (float64, error)
	MostCharged(ctx context.Context, limit int) ([]*ManagerSpend, error)
}

type chargeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewChargeRepository(db database.PgxIface, log *zap.Logger) ChargeRepository {
	return &chargeRepository{
		db:  db,
		log: log.With(zap.String("repository", "charge")),
	}
}

func (r *chargeRepository) FindRecent(ctx context.Context, limit int) ([]*ChargeDetail, error) {
	query := `
		SELECT c.id, m.manager_name, c.amount, c.created_at
		FROM charges c
		JOIN managers m ON m.id = c.manager_id
		ORDER BY c.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent charges", zap.Error(err))
		return nil, fmt.Errorf("find recent charges: %w", err)
	}
	defer rows.Close()

	var charges []*ChargeDetail
	for rows.Next() {
		var c ChargeDetail
		if err := rows.Scan(&c.ID, &c.ManagerName, &c.Amount, &c.CreatedAt); err != nil {
			r.log.Error("Failed to scan charge row", zap.Error(err))
			return nil, fmt.Errorf("scan charge row: %w", err)
		}
		charges = append(charges, &c)
	}

	return charges, nil
}

func (r *chargeRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM charges`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count charges", zap.Error(err))
		return 0, fmt.Errorf("count charges: %w", err)
	}

	return count, nil
}

func (r *chargeRepository) TotalAmount(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM charges`

	var total float64
	err := r.db.QueryRow(ctx, query).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum charges", zap.Error(err))
		return 0, fmt.Errorf("sum charges: %w", err)
	}

	return total, nil
}

func (r *chargeRepository) MostCharged(ctx context.Context, limit int) ([]*ManagerSpend, error) {
	query := `
		SELECT m.manager_name, COUNT(c.id), COALESCE(SUM(c.amount), 0)
		FROM charges c
		JOIN managers m ON m.id = c.manager_id
		GROUP BY m.id, m.manager_name
		ORDER BY COUNT(c.id) DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find most charged managers", zap.Error(err))
		return nil, fmt.Errorf("find most charged managers: %w", err)
	}
	defer rows.Close()

	var spends []*ManagerSpend
	for rows.Next() {
		var s ManagerSpend
		if err := rows.Scan(&s.ManagerName, &s.Charges, &s.Total); err != nil {
			r.log.Error("Failed to scan manager spend row", zap.Error(err))
			return nil, fmt.Errorf("scan manager spend row: %w", err)
		}
		spends = append(spends, &s)
	}

	return spends, nil
}
