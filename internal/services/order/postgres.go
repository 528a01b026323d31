package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"food-order-system/internal/database"
	"food-order-system/internal/errs"
	"food-order-system/internal/models"
)

// Sentinel errors of the conversion engine.
var (
	// ErrEmptyCart is the business failure for converting a cart with no lines.
	ErrEmptyCart = errs.E(errs.BusinessRule, "cart is empty")

	// ErrTxConflict is the retryable failure for concurrent modification of
	// the same cart during conversion. The caller retries the whole call.
	ErrTxConflict = errs.E(errs.TxConflict, "cart was modified concurrently, please retry")

	// ErrNumberTaken reports an order number collision; the service
	// regenerates the number and retries the transaction.
	ErrNumberTaken = errors.New("order number already taken")
)

// Repository is the order persistence port.
type Repository interface {
	// CreateFromCart converts the customer's cart into an order in one
	// atomic transaction: snapshot lines at live price, insert the order and
	// its lines, clear the cart. On any failure the cart is left untouched.
	CreateFromCart(ctx context.Context, userID int64, number, address string) (*models.Order, error)

	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)

	// UpdateStatus transitions an order's status under a row lock, rejecting
	// illegal transitions.
	UpdateStatus(ctx context.Context, number string, target models.OrderStatus) (*models.Order, error)
}

// PostgresRepository is the pgx-backed order store.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates the order store.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateFromCart implements the conversion transaction. The cart row is
// locked first so two concurrent conversions of the same cart serialize: the
// loser sees an empty cart or a lock timeout, never a double order.
func (r *PostgresRepository) CreateFromCart(ctx context.Context, userID int64, number, address string) (*models.Order, error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	// Bounded wait on the cart lock; timing out surfaces as a retryable
	// conflict instead of blocking the request indefinitely.
	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '3s'"); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to set lock timeout", err)
	}

	var cartID int64
	if err := tx.QueryRow(ctx, database.LockCartByUserSQL, userID).Scan(&cartID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.E(errs.NotFound, "cart not found")
		}
		return nil, r.mapTxErr(err, "failed to lock cart")
	}

	lines, err := r.cartLines(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		Number:  number,
		UserID:  userID,
		Status:  models.StatusPending,
		Address: address,
		Items:   make([]models.OrderLine, 0, len(lines)),
	}

	// Capture unit prices now; order lines never re-read the live menu price.
	total := decimal.Zero
	for _, line := range lines {
		subtotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		order.Items = append(order.Items, models.OrderLine{
			MenuID:    line.MenuID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			Subtotal:  subtotal,
			Menu: &models.MenuSummary{
				ID:       line.MenuID,
				Name:     line.MenuName,
				ImageURL: line.ImageURL,
			},
		})
	}
	order.TotalPrice = total

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number, order.UserID, order.Status, order.TotalPrice, order.Address,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "orders_number_key") {
			return nil, ErrNumberTaken
		}
		return nil, r.mapTxErr(err, "failed to insert order")
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, database.InsertOrderLineSQL,
			order.ID, item.MenuID, item.Quantity, item.UnitPrice, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return nil, r.mapTxErr(err, "failed to insert order line")
		}
	}

	if _, err := tx.Exec(ctx, database.ClearCartSQL, cartID); err != nil {
		return nil, r.mapTxErr(err, "failed to clear cart")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, r.mapTxErr(err, "failed to commit order")
	}

	return order, nil
}

// GetByID loads an order with its lines.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return r.loadOrder(ctx, database.GetOrderByIDSQL, id)
}

// GetByNumber loads an order with its lines by its public number.
func (r *PostgresRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	return r.loadOrder(ctx, database.GetOrderByNumberSQL, number)
}

// ListByUser returns the customer's orders, newest first, with lines.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.ListOrdersByUserSQL, userID)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to list orders", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, errs.Wrap(errs.Internal, "failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to read orders", err)
	}

	for i := range orders {
		items, err := r.orderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateStatus locks the order row, validates the transition against the
// fulfillment state machine and applies it.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, number string, target models.OrderStatus) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	var orderID int64
	var current models.OrderStatus
	if err := tx.QueryRow(ctx, database.LockOrderByNumberSQL, number).Scan(&orderID, &current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.Ef(errs.NotFound, "order %s not found", number)
		}
		return nil, errs.Wrap(errs.Internal, "failed to lock order", err)
	}

	if !current.CanTransitionTo(target) {
		return nil, errs.Ef(errs.BusinessRule, "cannot transition order from %s to %s", current, target)
	}

	var updatedAt time.Time
	if err := tx.QueryRow(ctx, database.UpdateOrderStatusSQL, orderID, target).Scan(&updatedAt); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to update order status", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to commit status update", err)
	}

	return r.GetByNumber(ctx, number)
}

func (r *PostgresRepository) loadOrder(ctx context.Context, query string, arg any) (*models.Order, error) {
	var o models.Order
	if err := scanOrder(r.db.QueryRow(ctx, query, arg), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.E(errs.NotFound, "order not found")
		}
		return nil, errs.Wrap(errs.Internal, "failed to load order", err)
	}

	items, err := r.orderLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PostgresRepository) cartLines(ctx context.Context, tx pgx.Tx, cartID int64) ([]models.CartLine, error) {
	rows, err := tx.Query(ctx, database.GetCartLinesSQL, cartID)
	if err != nil {
		return nil, r.mapTxErr(err, "failed to read cart lines")
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
	return lines, rows.Err()
}

func (r *PostgresRepository) orderLines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	rows, err := r.db.Query(ctx, database.GetOrderLinesSQL, orderID)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to load order lines", err)
	}
	defer rows.Close()

	items := []models.OrderLine{}
	for rows.Next() {
		var item models.OrderLine
		menu := &models.MenuSummary{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &menu.Name, &menu.ImageURL)
		if err != nil {
			return nil, errs.Wrap(errs.Internal, "failed to scan order line", err)
		}
		menu.ID = item.MenuID
		item.Menu = menu
		items = append(items, item)
	}
	return items, rows.Err()
}

// mapTxErr distinguishes retryable conflicts from hard persistence failures.
func (r *PostgresRepository) mapTxErr(err error, msg string) error {
	if database.IsTxConflict(err) {
		return ErrTxConflict
	}
	return errs.Wrap(errs.Internal, msg, err)
}

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(&o.ID, &o.Number, &o.UserID, &o.Status, &o.TotalPrice,
		&o.Address, &o.CreatedAt, &o.UpdatedAt)
}
