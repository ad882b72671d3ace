package repository

import (
	"context"
	"fmt"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	// Upsert inserts the user or, when the employee_uid already exists,
	// refreshes email, name parts and manager reference. The stored row is
	// returned either way.
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmployeeUID(ctx context.Context, employeeUID string) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, employee_uid, email, first_name, last_name, manager_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_uid) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    manager_name = EXCLUDED.manager_name,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, employee_uid, email, first_name, last_name, manager_name, created_at, updated_at
	`

	var stored entity.User
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.EmployeeUID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ManagerName,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(
		&stored.ID,
		&stored.EmployeeUID,
		&stored.Email,
		&stored.FirstName,
		&stored.LastName,
		&stored.ManagerName,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert user",
			zap.Error(err),
			zap.String("employee_uid", user.EmployeeUID),
		)
		return nil, fmt.Errorf("upsert user %s: %w", user.EmployeeUID, err)
	}

	return &stored, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, employee_uid, email, first_name, last_name, manager_name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.EmployeeUID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.ManagerName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmployeeUID(ctx context.Context, employeeUID string) (*entity.User, error) {
	query := `
		SELECT id, employee_uid, email, first_name, last_name, manager_name, created_at, updated_at
		FROM users
		WHERE employee_uid = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, employeeUID).Scan(
		&user.ID,
		&user.EmployeeUID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.ManagerName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by employee UID",
			zap.Error(err),
			zap.String("employee_uid", employeeUID),
		)
		return nil, fmt.Errorf("find user by employee UID %s: %w", employeeUID, err)
	}

	return &user, nil
}
