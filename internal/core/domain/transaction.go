package domain

import (
	"strings"
	"time"
)

// TransactionRecord is one completed sale. Each sale moves exactly one unit.
type TransactionRecord struct {
	EnteredAt     time.Time `json:"entered_at"`
	Name          string    `json:"name"`
	AmountCharged int64     `json:"amount_charged"`
	QuantitySold  int       `json:"quantity_sold"`
	CostBasis     int64     `json:"cost_basis"`
	SoldAt        time.Time `json:"sold_at"` // zero for rows written before sale times were kept
}

// NewTransaction builds the log entry for selling one unit of item.
func NewTransaction(item InventoryRecord, charged int64, soldAt time.Time) TransactionRecord {
	return TransactionRecord{
		EnteredAt:     item.EnteredAt,
		Name:          item.Name,
		AmountCharged: charged,
		QuantitySold:  1,
		CostBasis:     item.CostBasis,
		SoldAt:        soldAt,
	}
}

// SoldWithin reports whether the sale's calendar date falls in [from, to].
// Only the year, month and day of from and to are used. Rows without a sale
// time never match.
func (t TransactionRecord) SoldWithin(from, to time.Time) bool {
	if t.SoldAt.IsZero() {
		return false
	}
	day := dateKey(t.SoldAt)
	return day >= dateKey(from) && day <= dateKey(to)
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// ParseDay reads a YYYY-MM-DD date in local time.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
}
