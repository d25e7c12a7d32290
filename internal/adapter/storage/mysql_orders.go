package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minhvd/warehouse/internal/core/domain"
)

const orderColumns = "id, item_code, quantity, recipient, address, phone, sender_email, status, created_at, updated_at"

// MySQLOrders implements port.OrderRepository. Approve and Reject join the
// orders and stock tables in one transaction: the order row is locked FOR
// UPDATE, the stock mutation is a conditional UPDATE, and a failed guard
// rolls the whole thing back with the order still pending.
type MySQLOrders struct {
	db *sql.DB
}

func NewMySQLOrders(db *sql.DB) *MySQLOrders {
	return &MySQLOrders{db: db}
}

func (m *MySQLOrders) Create(ctx context.Context, order *domain.Order) error {
	order.ID = uuid.NewString()
	order.Status = domain.OrderStatusPending
	order.CreatedAt = time.Now().UTC().Truncate(time.Second)
	order.UpdatedAt = order.CreatedAt

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.ItemCode, order.Quantity, order.Recipient, order.Address,
		order.Phone, order.SenderEmail, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (m *MySQLOrders) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID)
	return scanOrder(row)
}

func (m *MySQLOrders) Approve(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.resolve(ctx, orderID, domain.OrderStatusApproved)
}

func (m *MySQLOrders) Reject(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.resolve(ctx, orderID, domain.OrderStatusRejected)
}

func (m *MySQLOrders) resolve(ctx context.Context, orderID string, decision domain.OrderStatus) (*domain.Order, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var itemCode string
	var quantity int
	var status domain.OrderStatus
	err = tx.QueryRowContext(ctx, `
		SELECT item_code, quantity, status FROM orders WHERE id = ? FOR UPDATE`, orderID,
	).Scan(&itemCode, &quantity, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	if status != domain.OrderStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	if decision == domain.OrderStatusApproved {
		// Re-check quantity at commit time: two approvals racing for the
		// same stock serialize on the row and at most one passes the guard.
		result, err := tx.ExecContext(ctx, `
			UPDATE stock
			SET quantity = quantity - ?, reserved = GREATEST(reserved - ?, 0), updated_at = NOW()
			WHERE item_code = ? AND quantity >= ?`,
			quantity, quantity, itemCode, quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("consume stock: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			// Rollback leaves the order pending and stock untouched.
			return nil, domain.ErrInsufficientStock
		}
	} else {
		// Rejection only returns the hold; quantity is never touched.
		_, err := tx.ExecContext(ctx, `
			UPDATE stock
			SET reserved = GREATEST(reserved - ?, 0), updated_at = NOW()
			WHERE item_code = ?`,
			quantity, itemCode,
		)
		if err != nil {
			return nil, fmt.Errorf("release stock: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`,
		decision, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit resolve: %w", err)
	}

	return m.Get(ctx, orderID)
}

func (m *MySQLOrders) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var conds []string
	var args []any

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		conds = append(conds, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if !filter.From.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, filter.To)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.ItemCode, &order.Quantity, &order.Recipient, &order.Address,
		&order.Phone, &order.SenderEmail, &order.Status, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	return &order, nil
}
