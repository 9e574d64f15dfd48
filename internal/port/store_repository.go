package port

import (
	"context"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

type InventoryStore interface {
	// List loads every record in stored order. A store that was never
	// written is empty, not an error.
	List(ctx context.Context) ([]domain.InventoryRecord, error)

	// ReplaceAll overwrites the store with exactly records, in order
	ReplaceAll(ctx context.Context, records []domain.InventoryRecord) error
}

type TransactionLog interface {
	// List returns every logged sale, oldest first. A missing log is empty.
	List(ctx context.Context) ([]domain.TransactionRecord, error)

	// Append adds one sale to the end without touching earlier entries
	Append(ctx context.Context, tx domain.TransactionRecord) error
}
