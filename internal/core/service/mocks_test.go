package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

var errDiskFull = errors.New("disk full")

// Mock InventoryStore
type mockInventoryStore struct {
	records   []domain.InventoryRecord
	writes    int
	failRead  bool
	failWrite bool
	mu        sync.Mutex
}

func (m *mockInventoryStore) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failRead {
		return nil, domain.ErrStoreUnreadable
	}
	return slices.Clone(m.records), nil
}

func (m *mockInventoryStore) ReplaceAll(ctx context.Context, records []domain.InventoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite {
		return domain.ErrStoreUnwritable
	}
	m.writes++
	m.records = slices.Clone(records)
	return nil
}

// Mock TransactionLog
type mockTransactionLog struct {
	txs        []domain.TransactionRecord
	failAppend bool
	mu         sync.Mutex
}

func (m *mockTransactionLog) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.txs), nil
}

func (m *mockTransactionLog) Append(ctx context.Context, tx domain.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAppend {
		return errDiskFull
	}
	m.txs = append(m.txs, tx)
	return nil
}

// Mock CacheRepository
type mockCacheRepo struct {
	idempotencySet map[string]bool
	summary        *domain.SalesSummary
	summaryReads   int
	mu             sync.Mutex
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{idempotencySet: make(map[string]bool)}
}

func (m *mockCacheRepo) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.idempotencySet[key] {
		return false, nil
	}
	m.idempotencySet[key] = true
	return true, nil
}

func (m *mockCacheRepo) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.idempotencySet, key)
	return nil
}

func (m *mockCacheRepo) GetSummary(ctx context.Context) (domain.SalesSummary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summaryReads++
	if m.summary == nil {
		return domain.SalesSummary{}, false, nil
	}
	return *m.summary, true, nil
}

func (m *mockCacheRepo) SetSummary(ctx context.Context, s domain.SalesSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = &s
	return nil
}

func (m *mockCacheRepo) InvalidateSummary(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = nil
	return nil
}
