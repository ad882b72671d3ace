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

type ManagerRepository interface {
	// GetOrCreate resolves the account for a manager name, creating it with
	// the default balance when it does not exist yet. The create is an
	// atomic upsert, so two concurrent first bookings under the same manager
	// name end up with a single account.
	GetOrCreate(ctx context.Context, managerName string, defaultBalance float64) (*entity.Manager, error)
	FindByName(ctx context.Context, managerName string) (*entity.Manager, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Manager, error)
	FindAll(ctx context.Context) ([]*entity.Manager, error)
	Create(ctx context.Context, manager *entity.Manager) error
	Count(ctx context.Context) (int64, error)
	FindLowestBalance(ctx context.Context) (*entity.Manager, error)
	// ResetBalances sets every manager balance to the given value and
	// returns the number of accounts touched.
	ResetBalances(ctx context.Context, balance float64) (int64, error)
}

type managerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewManagerRepository(db database.PgxIface, log *zap.Logger) ManagerRepository {
	return &managerRepository{
		db:  db,
		log: log.With(zap.String("repository", "manager")),
	}
}

func (r *managerRepository) GetOrCreate(ctx context.Context, managerName string, defaultBalance float64) (*entity.Manager, error) {
	now := time.Now().UTC()

	// Upsert first: DO NOTHING keeps an existing balance untouched.
	insert := `
		INSERT INTO managers (id, manager_name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (manager_name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, insert, uuid.New(), managerName, defaultBalance, now, now)
	if err != nil {
		r.log.Error("Failed to upsert manager",
			zap.Error(err),
			zap.String("manager_name", managerName),
		)
		return nil, fmt.Errorf("upsert manager %s: %w", managerName, err)
	}

	manager, err := r.FindByName(ctx, managerName)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, fmt.Errorf("manager %s missing after upsert", managerName)
	}
	return manager, nil
}

func (r *managerRepository) FindByName(ctx context.Context, managerName string) (*entity.Manager, error) {
	query := `
		SELECT id, manager_name, balance, created_at, updated_at
		FROM managers
		WHERE manager_name = $1
	`

	var manager entity.Manager
	err := r.db.QueryRow(ctx, query, managerName).Scan(
		&manager.ID,
		&manager.ManagerName,
		&manager.Balance,
		&manager.CreatedAt,
		&manager.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find manager by name",
			zap.Error(err),
			zap.String("manager_name", managerName),
		)
		return nil, fmt.Errorf("find manager by name %s: %w", managerName, err)
	}

	return &manager, nil
}

func (r *managerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Manager, error) {
	query := `
		SELECT id, manager_name, balance, created_at, updated_at
		FROM managers
		WHERE id = $1
	`

	var manager entity.Manager
	err := r.db.QueryRow(ctx, query, id).Scan(
		&manager.ID,
		&manager.ManagerName,
		&manager.Balance,
		&manager.CreatedAt,
		&manager.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find manager by ID",
			zap.Error(err),
			zap.String("manager_id", id.String()),
		)
		return nil, fmt.Errorf("find manager by ID %s: %w", id.String(), err)
	}

	return &manager, nil
}

func (r *managerRepository) FindAll(ctx context.Context) ([]*entity.Manager, error) {
	query := `
		SELECT id, manager_name, balance, created_at, updated_at
		FROM managers
		ORDER BY manager_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all managers", zap.Error(err))
		return nil, fmt.Errorf("find all managers: %w", err)
	}
	defer rows.Close()

	var managers []*entity.Manager
	for rows.Next() {
		var manager entity.Manager
		err := rows.Scan(
			&manager.ID,
			&manager.ManagerName,
			&manager.Balance,
			&manager.CreatedAt,
			&manager.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan manager row", zap.Error(err))
			return nil, fmt.Errorf("scan manager row: %w", err)
		}
		managers = append(managers, &manager)
	}

	return managers, nil
}

func (r *managerRepository) Create(ctx context.Context, manager *entity.Manager) error {
	query := `
		INSERT INTO managers (id, manager_name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		manager.ID,
		manager.ManagerName,
		manager.Balance,
		manager.CreatedAt,
		manager.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create manager",
			zap.Error(err),
			zap.String("manager_name", manager.ManagerName),
		)
		return fmt.Errorf("create manager %s: %w", manager.ManagerName, err)
	}

	return nil
}

func (r *managerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM managers`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count managers", zap.Error(err))
		return 0, fmt.Errorf("count managers: %w", err)
	}
	return count, nil
}

func (r *managerRepository) FindLowestBalance(ctx context.Context) (*entity.Manager, error) {
	query := `
		SELECT id, manager_name, balance, created_at, updated_at
		FROM managers
		ORDER BY balance ASC
		LIMIT 1
	`

	var manager entity.Manager
	err := r.db.QueryRow(ctx, query).Scan(
		&manager.ID,
		&manager.ManagerName,
		&manager.Balance,
		&manager.CreatedAt,
		&manager.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find lowest balance manager", zap.Error(err))
		return nil, fmt.Errorf("find lowest balance manager: %w", err)
	}

	return &manager, nil
}

func (r *managerRepository) ResetBalances(ctx context.Context, balance float64) (int64, error) {
	query := `UPDATE managers SET balance = $1, updated_at = NOW()`

	result, err := r.db.Exec(ctx, query, balance)
	if err != nil {
		r.log.Error("Failed to reset manager balances",
			zap.Error(err),
			zap.Float64("balance", balance),
		)
		return 0, fmt.Errorf("reset manager balances: %w", err)
	}

	return result.RowsAffected(), nil
}
