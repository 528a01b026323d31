package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"food-order-system/internal/database"
	"food-order-system/internal/errs"
	"food-order-system/internal/models"
)

// Repository is the user persistence port of the identity layer.
type Repository interface {
	// CreateUser inserts the user and, when withCart is set, provisions the
	// customer's cart in the same transaction.
	CreateUser(ctx context.Context, user *models.User, withCart bool) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// PostgresRepository is the pgx-backed user store.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates the user store.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateUser inserts the user row and optionally the cart row atomically.
// A duplicate email surfaces as a Conflict.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User, withCart bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertUserSQL,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "users_email_key") {
			return errs.E(errs.Conflict, "email is already registered")
		}
		return errs.Wrap(errs.Internal, "failed to create user", err)
	}

	if withCart {
		var cartID int64
		if err := tx.QueryRow(ctx, database.InsertCartSQL, user.ID).Scan(&cartID); err != nil {
			return errs.Wrap(errs.Internal, "failed to create cart", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(errs.Internal, "failed to commit registration", err)
	}
	return nil
}

// GetByEmail loads a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, database.GetUserByEmailSQL, email))
}

// GetByID loads a user by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, database.GetUserByIDSQL, id))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.E(errs.NotFound, "user not found")
		}
		return nil, errs.Wrap(errs.Internal, "failed to load user", err)
	}
	return &user, nil
}
