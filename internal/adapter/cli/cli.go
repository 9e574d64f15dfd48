package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/core/service"
)

const usage = "Available: list [column] [asc|desc], add <name> <price> <qty> <cost>, " +
	"update <no> <name> <price> <qty> <cost>, delete <no>, sell <no> <cash|card>, " +
	"transactions [from to], summary [from to]"

var ErrUsage = errors.New("usage")

// Run executes a one-shot CLI command. args is os.Args[1:] and the first
// element is the subcommand name. Rows are addressed by the 1-based number
// shown by list, in stored order.
func Run(ctx context.Context, svc *service.SalesService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}

	switch args[0] {
	case "list", "ls", "l":
		return list(ctx, svc, args[1:], out)

	case "add", "a":
		if len(args) != 5 {
			return fmt.Errorf("%w: add <name> <price> <qty> <cost>", ErrUsage)
		}
		rec, err := parseRecord(args[1:])
		if err != nil {
			return err
		}
		added, err := svc.AddItem(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s.\n", added.Name)

	case "update", "u":
		if len(args) != 6 {
			return fmt.Errorf("%w: update <no> <name> <price> <qty> <cost>", ErrUsage)
		}
		old, err := pick(ctx, svc, args[1])
		if err != nil {
			return err
		}
		next, err := parseRecord(args[2:])
		if err != nil {
			return err
		}
		if err := svc.UpdateItem(ctx, old, next); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated %s.\n", next.Name)

	case "delete", "del", "rm":
		if len(args) != 2 {
			return fmt.Errorf("%w: delete <no>", ErrUsage)
		}
		rec, err := pick(ctx, svc, args[1])
		if err != nil {
			return err
		}
		if err := svc.DeleteItem(ctx, rec); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %s.\n", rec.Name)

	case "sell", "s":
		if len(args) < 3 {
			return fmt.Errorf("%w: sell <no> <cash|card>", ErrUsage)
		}
		rec, err := pick(ctx, svc, args[1])
		if err != nil {
			return err
		}
		res, err := svc.Sell(ctx, uuid.NewString(), rec, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Sold %s for %d.\n", res.Transaction.Name, res.Charged)

	case "transactions", "tx", "t":
		return transactions(ctx, svc, args[1:], out)

	case "summary", "sum":
		return summary(ctx, svc, args[1:], out)

	default:
		return fmt.Errorf("%w: unknown command %s\n%s", ErrUsage, args[0], usage)
	}
	return nil
}

func list(ctx context.Context, svc *service.SalesService, args []string, out io.Writer) error {
	var (
		records []domain.InventoryRecord
		err     error
	)
	switch len(args) {
	case 0:
		records, err = svc.Inventory(ctx)
	case 1:
		records, err = svc.SortedInventory(ctx, args[0], "asc")
	default:
		records, err = svc.SortedInventory(ctx, args[0], args[1])
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("=", 78))
	fmt.Fprintf(out, "  %-4s %-19s %-20s %10s %6s %10s\n", "NO", "ENTERED", "NAME", "PRICE", "QTY", "COST")
	fmt.Fprintln(out, strings.Repeat("-", 78))
	for i, r := range records {
		fmt.Fprintf(out, "  %-4d %-19s %-20s %10d %6d %10d\n", i+1, formatTime(r.EnteredAt), r.Name, r.UnitPrice, r.Quantity, r.CostBasis)
	}
	fmt.Fprintln(out, strings.Repeat("=", 78))
	return nil
}

func transactions(ctx context.Context, svc *service.SalesService, args []string, out io.Writer) error {
	var (
		txs []domain.TransactionRecord
		err error
	)
	if len(args) == 0 {
		txs, err = svc.Transactions(ctx)
	} else {
		from, to, perr := parseRange(args)
		if perr != nil {
			return perr
		}
		txs, err = svc.TransactionsBetween(ctx, from, to)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("=", 78))
	fmt.Fprintf(out, "  %-4s %-19s %-20s %10s %10s %-19s\n", "NO", "SOLD", "NAME", "AMOUNT", "COST", "ENTERED")
	fmt.Fprintln(out, strings.Repeat("-", 78))
	for i, tx := range txs {
		fmt.Fprintf(out, "  %-4d %-19s %-20s %10d %10d %-19s\n", i+1, formatTime(tx.SoldAt), tx.Name, tx.AmountCharged, tx.CostBasis, formatTime(tx.EnteredAt))
	}
	fmt.Fprintln(out, strings.Repeat("=", 78))
	return nil
}

func summary(ctx context.Context, svc *service.SalesService, args []string, out io.Writer) error {
	var (
		s   domain.SalesSummary
		err error
	)
	if len(args) == 0 {
		s, err = svc.Summary(ctx)
	} else {
		from, to, perr := parseRange(args)
		if perr != nil {
			return perr
		}
		s, err = svc.SummaryBetween(ctx, from, to)
	}
	if errors.Is(err, domain.ErrNoTransactions) {
		fmt.Fprintln(out, "No transactions recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Sales:  %d\n", s.Count)
	fmt.Fprintf(out, "Total:  %d\n", s.TotalSales)
	fmt.Fprintf(out, "Cost:   %d\n", s.TotalCost)
	fmt.Fprintf(out, "Profit: %d\n", s.Profit)
	return nil
}

// pick returns the record at the 1-based position no.
func pick(ctx context.Context, svc *service.SalesService, no string) (domain.InventoryRecord, error) {
	n, err := strconv.Atoi(no)
	if err != nil {
		return domain.InventoryRecord{}, fmt.Errorf("%w: row number must be an integer, got %q", ErrUsage, no)
	}
	records, err := svc.Inventory(ctx)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	if n < 1 || n > len(records) {
		return domain.InventoryRecord{}, fmt.Errorf("%w: no row %d", domain.ErrRecordNotFound, n)
	}
	return records[n-1], nil
}

func parseRecord(args []string) (domain.InventoryRecord, error) {
	price, err := parseWhole("price", args[1])
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	qty, err := parseWhole("quantity", args[2])
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	cost, err := parseWhole("cost", args[3])
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	return domain.InventoryRecord{Name: args[0], UnitPrice: price, Quantity: int(qty), CostBasis: cost}, nil
}

func parseWhole(field, s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", ErrUsage, field, s)
	}
	return d.IntPart(), nil
}

func parseRange(args []string) (time.Time, time.Time, error) {
	if len(args) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: expected <from> <to> as YYYY-MM-DD", ErrUsage)
	}
	from, err := domain.ParseDay(args[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date %q", ErrUsage, args[0])
	}
	to, err := domain.ParseDay(args[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date %q", ErrUsage, args[1])
	}
	return from, to, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateTime)
}
