package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfStock       = errors.New("item is out of stock")
	ErrRecordNotFound   = errors.New("record not found")
	ErrNoTransactions   = errors.New("no transactions recorded yet")
	ErrStoreUnreadable  = errors.New("store unreadable")
	ErrStoreUnwritable  = errors.New("store unwritable")
	ErrUnknownSortField = errors.New("unknown sort column")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

// ValidationError rejects a candidate record before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InvalidPaymentMethodError carries the method string that was not recognised.
type InvalidPaymentMethodError struct {
	Method string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("invalid payment method %q", e.Method)
}

// Reason returns the message to show a user for err.
func Reason(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	var perr *InvalidPaymentMethodError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	switch {
	case errors.Is(err, ErrOutOfStock):
		return ErrOutOfStock.Error()
	case errors.Is(err, ErrRecordNotFound):
		return ErrRecordNotFound.Error()
	case errors.Is(err, ErrNoTransactions):
		return ErrNoTransactions.Error()
	}
	return err.Error()
}
