package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS inventory_records (
		position   INT NOT NULL,
		entered_at DATETIME NULL,
		name       VARCHAR(255) NOT NULL,
		unit_price BIGINT NOT NULL,
		quantity   INT NOT NULL,
		cost_basis BIGINT NOT NULL,
		INDEX idx_inventory_position (position)
	)`,
	`CREATE TABLE IF NOT EXISTS sales_transactions (
		id             BIGINT AUTO_INCREMENT PRIMARY KEY,
		entered_at     DATETIME NULL,
		name           VARCHAR(255) NOT NULL,
		amount_charged BIGINT NOT NULL,
		quantity_sold  INT NOT NULL,
		cost_basis     BIGINT NOT NULL,
		sold_at        DATETIME NULL
	)`,
}

// MySQLAdapter stores both the inventory and the transaction log in MySQL.
// The inventory table is still replaced wholesale on each change so it
// behaves exactly like the file store, row order included.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Inventory returns the adapter as a port.InventoryStore.
func (m *MySQLAdapter) Inventory() *MySQLInventoryStore {
	return &MySQLInventoryStore{db: m.db}
}

// Transactions returns the adapter as a port.TransactionLog.
func (m *MySQLAdapter) Transactions() *MySQLTransactionLog {
	return &MySQLTransactionLog{db: m.db}
}

type MySQLInventoryStore struct {
	db *sql.DB
}

func (s *MySQLInventoryStore) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entered_at, name, unit_price, quantity, cost_basis
		FROM inventory_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query inventory: %w", domain.ErrStoreUnreadable, err)
	}
	defer rows.Close()

	var records []domain.InventoryRecord
	for rows.Next() {
		var rec domain.InventoryRecord
		var enteredAt sql.NullTime
		if err := rows.Scan(&enteredAt, &rec.Name, &rec.UnitPrice, &rec.Quantity, &rec.CostBasis); err != nil {
			return nil, fmt.Errorf("%w: scan inventory: %w", domain.ErrStoreUnreadable, err)
		}
		rec.EnteredAt = fromNullTime(enteredAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query inventory: %w", domain.ErrStoreUnreadable, err)
	}
	return records, nil
}

func (s *MySQLInventoryStore) ReplaceAll(ctx context.Context, records []domain.InventoryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", domain.ErrStoreUnwritable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_records`); err != nil {
		return fmt.Errorf("%w: clear inventory: %w", domain.ErrStoreUnwritable, err)
	}

	for i, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_records (position, entered_at, name, unit_price, quantity, cost_basis)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, toNullTime(rec.EnteredAt), rec.Name, rec.UnitPrice, rec.Quantity, rec.CostBasis,
		)
		if err != nil {
			return fmt.Errorf("%w: insert inventory: %w", domain.ErrStoreUnwritable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrStoreUnwritable, err)
	}
	return nil
}

type MySQLTransactionLog struct {
	db *sql.DB
}

func (l *MySQLTransactionLog) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT entered_at, name, amount_charged, quantity_sold, cost_basis, sold_at
		FROM sales_transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %w", domain.ErrStoreUnreadable, err)
	}
	defer rows.Close()

	var txs []domain.TransactionRecord
	for rows.Next() {
		var t domain.TransactionRecord
		var enteredAt, soldAt sql.NullTime
		if err := rows.Scan(&enteredAt, &t.Name, &t.AmountCharged, &t.QuantitySold, &t.CostBasis, &soldAt); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", domain.ErrStoreUnreadable, err)
		}
		t.EnteredAt = fromNullTime(enteredAt)
		t.SoldAt = fromNullTime(soldAt)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query transactions: %w", domain.ErrStoreUnreadable, err)
	}
	return txs, nil
}

func (l *MySQLTransactionLog) Append(ctx context.Context, t domain.TransactionRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO sales_transactions (entered_at, name, amount_charged, quantity_sold, cost_basis, sold_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		toNullTime(t.EnteredAt), t.Name, t.AmountCharged, t.QuantitySold, t.CostBasis, toNullTime(t.SoldAt),
	)
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %w", domain.ErrStoreUnwritable, err)
	}
	return nil
}

func toNullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func fromNullTime(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}
