package service

import (
	"context"
	"strings"
	"time"

	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/port"
)

// InventoryRepository implements the record lifecycle on top of a store that
// can only load everything or replace everything. Every mutation is
// load all, change in memory, write all.
//
// Records are matched by value, so an operation aimed at one of several
// identical rows changes all of them.
type InventoryRepository struct {
	store port.InventoryStore
	now   func() time.Time
}

func NewInventoryRepository(store port.InventoryStore) *InventoryRepository {
	return &InventoryRepository{store: store, now: time.Now}
}

func (r *InventoryRepository) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	return r.store.List(ctx)
}

func (r *InventoryRepository) ReplaceAll(ctx context.Context, records []domain.InventoryRecord) error {
	return r.store.ReplaceAll(ctx, records)
}

// Add validates rec, stamps it with the current time when it has none and
// puts it at the front of the inventory. The returned record is the one List
// will give back.
func (r *InventoryRepository) Add(ctx context.Context, rec domain.InventoryRecord) (domain.InventoryRecord, error) {
	if err := domain.ValidateRecord(rec); err != nil {
		return domain.InventoryRecord{}, err
	}
	rec.Name = normalizeName(rec.Name)
	if rec.EnteredAt.IsZero() {
		rec.EnteredAt = r.now().Truncate(time.Second)
	}

	records, err := r.store.List(ctx)
	if err != nil {
		return domain.InventoryRecord{}, err
	}

	updated := make([]domain.InventoryRecord, 0, len(records)+1)
	updated = append(updated, rec)
	updated = append(updated, records...)

	if err := r.store.ReplaceAll(ctx, updated); err != nil {
		return domain.InventoryRecord{}, err
	}
	return rec, nil
}

// Update replaces every record matching old with next. A next without an
// entry time keeps the one from old.
func (r *InventoryRepository) Update(ctx context.Context, old, next domain.InventoryRecord) error {
	if err := domain.ValidateRecord(next); err != nil {
		return err
	}
	next.Name = normalizeName(next.Name)
	if next.EnteredAt.IsZero() {
		next.EnteredAt = old.EnteredAt
	}

	return r.mutate(ctx, old, func(rec *domain.InventoryRecord) error {
		*rec = next
		return nil
	})
}

// Delete removes every record matching rec.
func (r *InventoryRepository) Delete(ctx context.Context, rec domain.InventoryRecord) error {
	records, err := r.store.List(ctx)
	if err != nil {
		return err
	}

	kept := records[:0:0]
	for _, existing := range records {
		if !existing.Matches(rec) {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(records) {
		return domain.ErrRecordNotFound
	}
	return r.store.ReplaceAll(ctx, kept)
}

// DecrementQuantity takes one unit off every record matching rec. Nothing is
// written if any match is already out of stock.
func (r *InventoryRepository) DecrementQuantity(ctx context.Context, rec domain.InventoryRecord) error {
	return r.mutate(ctx, rec, func(rec *domain.InventoryRecord) error {
		if !rec.InStock() {
			return domain.ErrOutOfStock
		}
		rec.Quantity--
		return nil
	})
}

// mutate applies fn to every record matching match and writes the result.
func (r *InventoryRepository) mutate(ctx context.Context, match domain.InventoryRecord, fn func(*domain.InventoryRecord) error) error {
	records, err := r.store.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range records {
		if !records[i].Matches(match) {
			continue
		}
		found = true
		if err := fn(&records[i]); err != nil {
			return err
		}
	}
	if !found {
		return domain.ErrRecordNotFound
	}
	return r.store.ReplaceAll(ctx, records)
}

// normalizeName folds CRLF line breaks to LF. The CSV reader returns a quoted
// CRLF as LF, so a name stored with CRLF would never match itself again.
func normalizeName(name string) string {
	return strings.ReplaceAll(name, "\r\n", "\n")
}
