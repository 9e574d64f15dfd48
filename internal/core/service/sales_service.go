package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/port"
)

var ErrDuplicateSale = errors.New("duplicate sale request")

const saleKeyPrefix = "sale:"

// SaleResult is what a completed sale reports back.
type SaleResult struct {
	Charged     int64                    `json:"charged"`
	Transaction domain.TransactionRecord `json:"transaction"`
}

// SalesService is the single entry point presentation code talks to. It owns
// both repositories and runs one operation at a time, since the stores assume
// a single writer.
type SalesService struct {
	inventory    *InventoryRepository
	transactions *TransactionRepository
	cache        port.CacheRepository
	sorter       *domain.Sorter
	now          func() time.Time
	mu           sync.Mutex
}

func NewSalesService(inventory port.InventoryStore, transactions port.TransactionLog, cache port.CacheRepository) *SalesService {
	return &SalesService{
		inventory:    NewInventoryRepository(inventory),
		transactions: NewTransactionRepository(transactions),
		cache:        cache,
		sorter:       domain.NewSorter(),
		now:          time.Now,
	}
}

// SetClock replaces the time source used to stamp new records and sales.
func (s *SalesService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
	s.inventory.now = now
}

func (s *SalesService) Inventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inventory.List(ctx)
}

// SortedInventory orders the inventory by column. An empty order flips the
// direction remembered for that column; "asc" and "desc" force one.
func (s *SalesService) SortedInventory(ctx context.Context, column, order string) ([]domain.InventoryRecord, error) {
	col, err := domain.ParseSortColumn(column)
	if err != nil {
		return nil, err
	}

	records, err := s.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(order) {
	case "":
		return s.sorter.Toggle(records, col), nil
	case "asc":
		return domain.SortRecords(records, col, false), nil
	case "desc":
		return domain.SortRecords(records, col, true), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSortOrder, order)
	}
}

func (s *SalesService) AddItem(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.EnteredAt = time.Time{}
	return s.inventory.Add(ctx, rec)
}

func (s *SalesService) UpdateItem(ctx context.Context, old, next domain.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inventory.Update(ctx, old, next)
}

func (s *SalesService) DeleteItem(ctx context.Context, rec domain.InventoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inventory.Delete(ctx, rec)
}

// Sell sells one unit of item. The inventory rewrite and the log append are
// two separate writes: if the append fails the stock stays decremented with
// no sale recorded. A non-empty requestID makes retries of a completed sale
// fail with ErrDuplicateSale instead of selling twice.
func (s *SalesService) Sell(ctx context.Context, requestID string, item domain.InventoryRecord, method string) (SaleResult, error) {
	if !item.InStock() {
		return SaleResult{}, domain.ErrOutOfStock
	}

	pm, err := domain.ParsePaymentMethod(method)
	if err != nil {
		return SaleResult{}, err
	}
	charged, err := domain.Charge(pm, item.UnitPrice)
	if err != nil {
		return SaleResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := saleKeyPrefix + requestID
	if requestID != "" {
		ok, err := s.cache.SetIdempotency(ctx, key)
		if err != nil {
			return SaleResult{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return SaleResult{}, ErrDuplicateSale
		}
	}

	// Nothing has been written when the decrement fails, so the request may
	// be retried. After it succeeds the key stays taken.
	if err := s.inventory.DecrementQuantity(ctx, item); err != nil {
		if requestID != "" {
			if rerr := s.cache.ReleaseIdempotency(ctx, key); rerr != nil {
				log.Printf("failed to release request %s: %v", requestID, rerr)
			}
		}
		return SaleResult{}, err
	}

	tx := domain.NewTransaction(item, charged, s.now().Truncate(time.Second))
	if err := s.transactions.Append(ctx, tx); err != nil {
		return SaleResult{}, fmt.Errorf("stock decremented but sale not recorded: %w", err)
	}

	if err := s.cache.InvalidateSummary(ctx); err != nil {
		log.Printf("failed to invalidate summary cache: %v", err)
	}

	return SaleResult{Charged: charged, Transaction: tx}, nil
}

func (s *SalesService) Transactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactions.List(ctx)
}

func (s *SalesService) TransactionsBetween(ctx context.Context, from, to time.Time) ([]domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactions.FilterByDateRange(ctx, from, to)
}

// Summary totals the whole transaction log. It returns
// domain.ErrNoTransactions when nothing has been sold yet.
func (s *SalesService) Summary(ctx context.Context) (domain.SalesSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok, err := s.cache.GetSummary(ctx)
	if err != nil {
		log.Printf("summary cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	txs, err := s.transactions.List(ctx)
	if err != nil {
		return domain.SalesSummary{}, err
	}
	summary, err := domain.Summarize(txs)
	if err != nil {
		return domain.SalesSummary{}, err
	}

	if err := s.cache.SetSummary(ctx, summary); err != nil {
		log.Printf("summary cache write failed: %v", err)
	}
	return summary, nil
}

func (s *SalesService) SummaryBetween(ctx context.Context, from, to time.Time) (domain.SalesSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.transactions.FilterByDateRange(ctx, from, to)
	if err != nil {
		return domain.SalesSummary{}, err
	}
	return domain.Summarize(txs)
}

// Ping checks that the inventory store can be read.
func (s *SalesService) Ping(ctx context.Context) error {
	_, err := s.Inventory(ctx)
	return err
}
