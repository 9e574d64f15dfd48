package service

import (
	"context"
	"time"

	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/port"
)

type TransactionRepository struct {
	log port.TransactionLog
}

func NewTransactionRepository(log port.TransactionLog) *TransactionRepository {
	return &TransactionRepository{log: log}
}

func (r *TransactionRepository) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	return r.log.List(ctx)
}

func (r *TransactionRepository) Append(ctx context.Context, tx domain.TransactionRecord) error {
	return r.log.Append(ctx, tx)
}

// FilterByDateRange returns the sales made on any day from start to end
// inclusive. Rows without a sale time are left out.
func (r *TransactionRepository) FilterByDateRange(ctx context.Context, start, end time.Time) ([]domain.TransactionRecord, error) {
	txs, err := r.log.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.TransactionRecord
	for _, tx := range txs {
		if tx.SoldWithin(start, end) {
			out = append(out, tx)
		}
	}
	return out, nil
}
