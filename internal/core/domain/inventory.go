package domain

import "time"

// InventoryRecord is one row of the inventory store. It has no surrogate key:
// a record is identified by the exact value of all its fields.
type InventoryRecord struct {
	EnteredAt time.Time `json:"entered_at"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CostBasis int64     `json:"cost_basis"` // per unit, only used for profit
}

// Matches reports whether r and other are the same record. Two rows holding
// identical values are indistinguishable, so every duplicate matches.
func (r InventoryRecord) Matches(other InventoryRecord) bool {
	return r.EnteredAt.Equal(other.EnteredAt) &&
		r.Name == other.Name &&
		r.UnitPrice == other.UnitPrice &&
		r.Quantity == other.Quantity &&
		r.CostBasis == other.CostBasis
}

// InStock reports whether at least one unit can be sold.
func (r InventoryRecord) InStock() bool {
	return r.Quantity > 0
}
