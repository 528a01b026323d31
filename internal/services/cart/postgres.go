package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"food-order-system/internal/database"
	"food-order-system/internal/errs"
	"food-order-system/internal/models"
)

// Repository is the cart persistence port. Carts are provisioned at
// registration; these operations only mutate cart lines.
type Repository interface {
	GetCartID(ctx context.Context, userID int64) (int64, error)
	GetLines(ctx context.Context, cartID int64) ([]models.CartLine, error)
	MenuOrderable(ctx context.Context, menuID int64) (bool, error)
	UpsertLine(ctx context.Context, cartID, menuID int64, quantity int) error
	SetLineQuantity(ctx context.Context, cartID, menuID int64, quantity int) error
	DeleteLine(ctx context.Context, cartID, menuID int64) error
	Clear(ctx context.Context, cartID int64) error
}

// PostgresRepository is the pgx-backed cart store.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates the cart store.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetCartID resolves the customer's cart.
func (r *PostgresRepository) GetCartID(ctx context.Context, userID int64) (int64, error) {
	var cartID, ownerID int64
	err := r.db.QueryRow(ctx, database.GetCartByUserSQL, userID).Scan(&cartID, &ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.E(errs.NotFound, "cart not found")
		}
		return 0, errs.Wrap(errs.Internal, "failed to load cart", err)
	}
	return cartID, nil
}

// GetLines returns the cart's lines joined with live menu data.
func (r *PostgresRepository) GetLines(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	rows, err := r.db.Query(ctx, database.GetCartLinesSQL, cartID)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to load cart lines", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		err := rows.Scan(&line.ID, &line.CartID, &line.MenuID, &line.Quantity,
			&line.Price, &line.MenuName, &line.ImageURL)
		if err != nil {
			return nil, errs.Wrap(errs.Internal, "failed to scan cart line", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to read cart lines", err)
	}
	return lines, nil
}

// MenuOrderable reports whether the menu item exists, is not soft-deleted
// and is flagged available.
func (r *PostgresRepository) MenuOrderable(ctx context.Context, menuID int64) (bool, error) {
	var available bool
	err := r.db.QueryRow(ctx,
		"SELECT is_available FROM menus WHERE id = $1 AND deleted_at IS NULL", menuID,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errs.Wrap(errs.Internal, "failed to check menu", err)
	}
	return available, nil
}

// UpsertLine inserts a line or atomically increments the quantity of the
// existing (cart, menu) line.
func (r *PostgresRepository) UpsertLine(ctx context.Context, cartID, menuID int64, quantity int) error {
	if err := r.db.Exec(ctx, database.UpsertCartLineSQL, cartID, menuID, quantity); err != nil {
		return errs.Wrap(errs.Internal, "failed to add cart line", err)
	}
	return nil
}

// SetLineQuantity overwrites a line's quantity.
func (r *PostgresRepository) SetLineQuantity(ctx context.Context, cartID, menuID int64, quantity int) error {
	tag, err := r.db.Pool.Exec(ctx, database.SetCartLineQuantitySQL, cartID, menuID, quantity)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to update cart line", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.E(errs.NotFound, "item is not in the cart")
	}
	return nil
}

// DeleteLine removes a line.
func (r *PostgresRepository) DeleteLine(ctx context.Context, cartID, menuID int64) error {
	if err := r.db.Exec(ctx, database.DeleteCartLineSQL, cartID, menuID); err != nil {
		return errs.Wrap(errs.Internal, "failed to remove cart line", err)
	}
	return nil
}

// Clear deletes every line of the cart.
func (r *PostgresRepository) Clear(ctx context.Context, cartID int64) error {
	if err := r.db.Exec(ctx, database.ClearCartSQL, cartID); err != nil {
		return errs.Wrap(errs.Internal, "failed to clear cart", err)
	}
	return nil
}
