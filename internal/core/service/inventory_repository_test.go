package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

var fixedNow = time.Date(2024, 1, 10, 9, 15, 30, 0, time.Local)

func newTestInventoryRepo(records ...domain.InventoryRecord) (*InventoryRepository, *mockInventoryStore) {
	store := &mockInventoryStore{records: records}
	repo := NewInventoryRepository(store)
	repo.now = func() time.Time { return fixedNow }
	return repo, store
}

func TestAdd_PrependsWithTimestamp(t *testing.T) {
	existing := domain.InventoryRecord{EnteredAt: fixedNow.Add(-time.Hour), Name: "Tea", UnitPrice: 6000, Quantity: 2, CostBasis: 4000}
	repo, store := newTestInventoryRepo(existing)

	added, err := repo.Add(context.Background(), domain.InventoryRecord{Name: "Rice", UnitPrice: 75000, Quantity: 4, CostBasis: 68000})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if len(store.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(store.records))
	}
	if !store.records[0].Matches(added) {
		t.Errorf("expected new record first, got %+v", store.records[0])
	}
	if !added.EnteredAt.Equal(fixedNow) {
		t.Errorf("expected entered_at %v, got %v", fixedNow, added.EnteredAt)
	}
	if added.Name != "Rice" || added.UnitPrice != 75000 || added.Quantity != 4 || added.CostBasis != 68000 {
		t.Errorf("fields changed on add: %+v", added)
	}
}

func TestAdd_InvalidLeavesStoreUntouched(t *testing.T) {
	inputs := []domain.InventoryRecord{
		{Name: "", UnitPrice: 1000, Quantity: 1},
		{Name: "  ", UnitPrice: 1000, Quantity: 1},
		{Name: "Rice", UnitPrice: 0, Quantity: 1},
		{Name: "Rice", UnitPrice: -5, Quantity: 1},
		{Name: "Rice", UnitPrice: 1000, Quantity: 0},
		{Name: "Rice", UnitPrice: 1000, Quantity: -3},
	}

	for _, in := range inputs {
		repo, store := newTestInventoryRepo()

		_, err := repo.Add(context.Background(), in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%+v: expected ValidationError, got: %v", in, err)
		}
		if store.writes != 0 || len(store.records) != 0 {
			t.Errorf("%+v: store was modified", in)
		}
	}
}

func TestAdd_FoldsCRLFInName(t *testing.T) {
	repo, store := newTestInventoryRepo()

	added, err := repo.Add(context.Background(), domain.InventoryRecord{Name: "Kopi\r\nSusu", UnitPrice: 12000, Quantity: 2, CostBasis: 9000})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if added.Name != "Kopi\nSusu" {
		t.Errorf("expected name %q, got %q", "Kopi\nSusu", added.Name)
	}
	if !store.records[0].Matches(added) {
		t.Errorf("stored record %+v does not match returned %+v", store.records[0], added)
	}

	next := added
	next.Name = "Kopi\r\nSusu\r\nDingin"
	if err := repo.Update(context.Background(), added, next); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if store.records[0].Name != "Kopi\nSusu\nDingin" {
		t.Errorf("expected folded name after update, got %q", store.records[0].Name)
	}
}

func TestUpdate_ReplacesEveryDuplicate(t *testing.T) {
	dup := domain.InventoryRecord{EnteredAt: fixedNow, Name: "Soap", UnitPrice: 8000, Quantity: 3, CostBasis: 6000}
	other := domain.InventoryRecord{EnteredAt: fixedNow, Name: "Salt", UnitPrice: 4000, Quantity: 9, CostBasis: 2500}
	repo, store := newTestInventoryRepo(dup, other, dup)

	next := domain.InventoryRecord{Name: "Soap", UnitPrice: 9000, Quantity: 3, CostBasis: 6000}
	if err := repo.Update(context.Background(), dup, next); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	for _, i := range []int{0, 2} {
		if store.records[i].UnitPrice != 9000 {
			t.Errorf("record %d: expected price 9000, got %d", i, store.records[i].UnitPrice)
		}
		if !store.records[i].EnteredAt.Equal(fixedNow) {
			t.Errorf("record %d: entered_at should be kept", i)
		}
	}
	if !store.records[1].Matches(other) {
		t.Errorf("unrelated record changed: %+v", store.records[1])
	}
}

func TestUpdate_Validation(t *testing.T) {
	rec := domain.InventoryRecord{EnteredAt: fixedNow, Name: "Soap", UnitPrice: 8000, Quantity: 3}
	repo, store := newTestInventoryRepo(rec)

	next := rec
	next.UnitPrice = 0
	var verr *domain.ValidationError
	if err := repo.Update(context.Background(), rec, next); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got: %v", err)
	}
	if store.writes != 0 {
		t.Error("store should not be written")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, store := newTestInventoryRepo()

	rec := domain.InventoryRecord{Name: "Ghost", UnitPrice: 1, Quantity: 1}
	if err := repo.Update(context.Background(), rec, rec); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got: %v", err)
	}
	if store.writes != 0 {
		t.Error("store should not be written")
	}
}

func TestDelete_RemovesEveryDuplicate(t *testing.T) {
	dup := domain.InventoryRecord{EnteredAt: fixedNow, Name: "Soap", UnitPrice: 8000, Quantity: 3}
	other := domain.InventoryRecord{EnteredAt: fixedNow, Name: "Salt", UnitPrice: 4000, Quantity: 9}
	repo, store := newTestInventoryRepo(dup, other, dup)

	if err := repo.Delete(context.Background(), dup); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(store.records) != 1 || !store.records[0].Matches(other) {
		t.Errorf("expected only Salt to remain, got %+v", store.records)
	}

	if err := repo.Delete(context.Background(), dup); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on second delete, got: %v", err)
	}
}

func TestDecrementQuantity(t *testing.T) {
	rec := domain.InventoryRecord{EnteredAt: fixedNow, Name: "Soap", UnitPrice: 8000, Quantity: 1}
	repo, store := newTestInventoryRepo(rec)

	if err := repo.DecrementQuantity(context.Background(), rec); err != nil {
		t.Fatalf("DecrementQuantity failed: %v", err)
	}
	if len(store.records) != 1 || store.records[0].Quantity != 0 {
		t.Fatalf("expected one record with quantity 0, got %+v", store.records)
	}

	empty := store.records[0]
	writes := store.writes
	if err := repo.DecrementQuantity(context.Background(), empty); !errors.Is(err, domain.ErrOutOfStock) {
		t.Errorf("expected ErrOutOfStock, got: %v", err)
	}
	if store.writes != writes {
		t.Error("store should not be written when out of stock")
	}
}

func TestList_UnreadableStore(t *testing.T) {
	repo, store := newTestInventoryRepo()
	store.failRead = true

	if _, err := repo.List(context.Background()); !errors.Is(err, domain.ErrStoreUnreadable) {
		t.Errorf("expected ErrStoreUnreadable, got: %v", err)
	}
	_, err := repo.Add(context.Background(), domain.InventoryRecord{Name: "Rice", UnitPrice: 1, Quantity: 1})
	if !errors.Is(err, domain.ErrStoreUnreadable) {
		t.Errorf("expected ErrStoreUnreadable from Add, got: %v", err)
	}
}
