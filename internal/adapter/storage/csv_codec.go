package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

// Timestamps carry their UTC offset so the repeated hour at the end of
// daylight saving reads back as the instant that was written. Files from
// before the offset was added hold plain local wall-clock time.
const (
	timestampLayout       = "2006-01-02 15:04:05-07:00"
	legacyTimestampLayout = time.DateTime
)

var errBadRow = errors.New("malformed row")

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if len(s) == len(legacyTimestampLayout) {
		return time.ParseInLocation(legacyTimestampLayout, s, time.Local)
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}

// parseAmount reads an integer cell. Files written by the old desktop tool
// hold floats such as "10000.0", which are accepted when the fraction is zero.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%s is not a whole amount", s)
	}
	return d.IntPart(), nil
}

func parseCount(s string) (int, error) {
	n, err := parseAmount(s)
	return int(n), err
}

func formatInt[T int | int64](n T) string {
	return strconv.FormatInt(int64(n), 10)
}

func encodeInventory(r domain.InventoryRecord) []string {
	return []string{
		formatTimestamp(r.EnteredAt),
		r.Name,
		formatInt(r.UnitPrice),
		formatInt(r.Quantity),
		formatInt(r.CostBasis),
	}
}

// decodeInventory accepts the current five-column row and the legacy
// name,price,quantity,cost row.
func decodeInventory(row []string) (domain.InventoryRecord, error) {
	var r domain.InventoryRecord
	var err error

	switch len(row) {
	case 5:
		if r.EnteredAt, err = parseTimestamp(row[0]); err != nil {
			return r, fmt.Errorf("entered_at: %w", err)
		}
		row = row[1:]
	case 4:
	default:
		return r, fmt.Errorf("%w: %d columns", errBadRow, len(row))
	}

	r.Name = row[0]
	if r.UnitPrice, err = parseAmount(row[1]); err != nil {
		return r, fmt.Errorf("unit_price: %w", err)
	}
	if r.Quantity, err = parseCount(row[2]); err != nil {
		return r, fmt.Errorf("quantity: %w", err)
	}
	if r.CostBasis, err = parseAmount(row[3]); err != nil {
		return r, fmt.Errorf("cost_basis: %w", err)
	}
	return r, nil
}

func encodeTransaction(tx domain.TransactionRecord) []string {
	return []string{
		formatTimestamp(tx.EnteredAt),
		tx.Name,
		formatInt(tx.AmountCharged),
		formatInt(tx.QuantitySold),
		formatInt(tx.CostBasis),
		formatTimestamp(tx.SoldAt),
	}
}

// decodeTransaction accepts six columns, five (no sold_at) and the legacy
// name,amount,quantity,cost row.
func decodeTransaction(row []string) (domain.TransactionRecord, error) {
	var tx domain.TransactionRecord
	var err error

	switch len(row) {
	case 6:
		if tx.SoldAt, err = parseTimestamp(row[5]); err != nil {
			return tx, fmt.Errorf("sold_at: %w", err)
		}
		fallthrough
	case 5:
		if tx.EnteredAt, err = parseTimestamp(row[0]); err != nil {
			return tx, fmt.Errorf("entered_at: %w", err)
		}
		row = row[1:5]
	case 4:
	default:
		return tx, fmt.Errorf("%w: %d columns", errBadRow, len(row))
	}

	tx.Name = row[0]
	if tx.AmountCharged, err = parseAmount(row[1]); err != nil {
		return tx, fmt.Errorf("amount_charged: %w", err)
	}
	if tx.QuantitySold, err = parseCount(row[2]); err != nil {
		return tx, fmt.Errorf("quantity_sold: %w", err)
	}
	if tx.CostBasis, err = parseAmount(row[3]); err != nil {
		return tx, fmt.Errorf("cost_basis: %w", err)
	}
	return tx, nil
}
