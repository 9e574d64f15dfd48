package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

type SortColumn string

const (
	SortByEnteredAt SortColumn = "entered_at"
	SortByName      SortColumn = "name"
	SortByUnitPrice SortColumn = "unit_price"
	SortByQuantity  SortColumn = "quantity"
	SortByCostBasis SortColumn = "cost_basis"
)

func ParseSortColumn(s string) (SortColumn, error) {
	switch c := SortColumn(strings.ToLower(strings.TrimSpace(s))); c {
	case SortByEnteredAt, SortByName, SortByUnitPrice, SortByQuantity, SortByCostBasis:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortField, s)
}

// SortRecords returns a copy of records ordered by column.
func SortRecords(records []InventoryRecord, column SortColumn, descending bool) []InventoryRecord {
	out := slices.Clone(records)
	compare := comparator(column)
	slices.SortFunc(out, func(a, b InventoryRecord) int {
		if descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func comparator(column SortColumn) func(a, b InventoryRecord) int {
	switch column {
	case SortByName:
		return func(a, b InventoryRecord) int { return strings.Compare(a.Name, b.Name) }
	case SortByUnitPrice:
		return func(a, b InventoryRecord) int { return cmp.Compare(a.UnitPrice, b.UnitPrice) }
	case SortByQuantity:
		return func(a, b InventoryRecord) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByCostBasis:
		return func(a, b InventoryRecord) int { return cmp.Compare(a.CostBasis, b.CostBasis) }
	default:
		return func(a, b InventoryRecord) int { return a.EnteredAt.Compare(b.EnteredAt) }
	}
}

// Sorter remembers a direction per column, like clicking a table header:
// the first sort on a column is ascending and each repeat flips it.
type Sorter struct {
	mu         sync.Mutex
	descending map[SortColumn]bool
}

func NewSorter() *Sorter {
	return &Sorter{descending: make(map[SortColumn]bool)}
}

// Toggle sorts records by column in the column's current direction, then
// flips the direction for the next call.
func (s *Sorter) Toggle(records []InventoryRecord, column SortColumn) []InventoryRecord {
	s.mu.Lock()
	desc := s.descending[column]
	s.descending[column] = !desc
	s.mu.Unlock()

	return SortRecords(records, column, desc)
}
