package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/minhvd/warehouse/internal/core/domain"
)

// MySQLLedger implements port.LedgerRepository. Every mutation is a single
// conditional statement, so the database row is the serialization point for
// concurrent callers; the adapter never reads a quantity and writes it back.
type MySQLLedger struct {
	db *sql.DB
}

func NewMySQLLedger(db *sql.DB) *MySQLLedger {
	return &MySQLLedger{db: db}
}

func (m *MySQLLedger) Increase(ctx context.Context, itemCode string, amount int) (*domain.StockEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// Upsert keyed by the unique item_code index; concurrent first-sight
	// inserts collapse into one row plus additions.
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO stock (id, item_code, quantity, reserved, created_at, updated_at)
		VALUES (?, ?, ?, 0, NOW(), NOW())
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), updated_at = NOW()`,
		uuid.NewString(), itemCode, amount,
	)
	if err != nil {
		return nil, fmt.Errorf("increase stock: %w", err)
	}

	return m.Get(ctx, itemCode)
}

func (m *MySQLLedger) Decrease(ctx context.Context, itemCode string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}

	// Available stock is quantity minus outstanding holds; a write-off may
	// not eat into what pending orders have reserved.
	result, err := m.db.ExecContext(ctx, `
		UPDATE stock
		SET quantity = quantity - ?, updated_at = NOW()
		WHERE item_code = ? AND quantity - reserved >= ?`,
		amount, itemCode, amount,
	)
	if err != nil {
		return fmt.Errorf("decrease stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInsufficientStock
	}

	return nil
}

func (m *MySQLLedger) Reserve(ctx context.Context, itemCode string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}

	result, err := m.db.ExecContext(ctx, `
		UPDATE stock
		SET reserved = reserved + ?, updated_at = NOW()
		WHERE item_code = ? AND quantity - reserved >= ?`,
		amount, itemCode, amount,
	)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInsufficientStock
	}

	return nil
}

func (m *MySQLLedger) Release(ctx context.Context, itemCode string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}

	result, err := m.db.ExecContext(ctx, `
		UPDATE stock
		SET reserved = GREATEST(reserved - ?, 0), updated_at = NOW()
		WHERE item_code = ?`,
		amount, itemCode,
	)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

func (m *MySQLLedger) Get(ctx context.Context, itemCode string) (*domain.StockEntry, error) {
	var entry domain.StockEntry
	err := m.db.QueryRowContext(ctx, `
		SELECT id, item_code, quantity, reserved, created_at, updated_at
		FROM stock WHERE item_code = ?`, itemCode,
	).Scan(&entry.ID, &entry.ItemCode, &entry.Quantity, &entry.Reserved, &entry.CreatedAt, &entry.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}

	return &entry, nil
}

func (m *MySQLLedger) List(ctx context.Context) ([]domain.StockEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, item_code, quantity, reserved, created_at, updated_at
		FROM stock ORDER BY item_code`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		var entry domain.StockEntry
		if err := rows.Scan(&entry.ID, &entry.ItemCode, &entry.Quantity, &entry.Reserved, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
