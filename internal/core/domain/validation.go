package domain

import "strings"

const (
	ReasonNameRequired     = "name required."
	ReasonPriceNotPositive = "price must be positive."
	ReasonQtyNotPositive   = "quantity must be positive."
)

// Validate checks a candidate record's name, price and quantity. It returns
// nil or a *ValidationError for the first field that fails.
func Validate(name string, unitPrice int64, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: ReasonNameRequired}
	}
	if unitPrice <= 0 {
		return &ValidationError{Field: "unit_price", Reason: ReasonPriceNotPositive}
	}
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: ReasonQtyNotPositive}
	}
	return nil
}

// ValidateRecord is Validate applied to an existing record.
func ValidateRecord(r InventoryRecord) error {
	return Validate(r.Name, r.UnitPrice, r.Quantity)
}
