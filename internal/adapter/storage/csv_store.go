package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rl1809/sales-manager/internal/core/domain"
)

// CSVInventoryStore keeps the inventory in a headerless CSV file that is
// rewritten in full on every change. A crash part way through ReplaceAll can
// leave a truncated file behind; there is no recovery for that.
type CSVInventoryStore struct {
	path string
}

func NewCSVInventoryStore(path string) *CSVInventoryStore {
	return &CSVInventoryStore{path: path}
}

func (s *CSVInventoryStore) Path() string {
	return s.path
}

func (s *CSVInventoryStore) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readRows(s.path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.InventoryRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := decodeInventory(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", domain.ErrStoreUnreadable, s.path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *CSVInventoryStore) ReplaceAll(ctx context.Context, records []domain.InventoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnwritable, s.path, err)
	}

	w := csv.NewWriter(f)
	for _, rec := range records {
		if err := w.Write(encodeInventory(rec)); err != nil {
			f.Close()
			return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnwritable, s.path, err)
		}
	}
	return closeWriter(s.path, f, w)
}

// CSVTransactionLog is an append-only CSV file of completed sales.
type CSVTransactionLog struct {
	path string
}

func NewCSVTransactionLog(path string) *CSVTransactionLog {
	return &CSVTransactionLog{path: path}
}

func (l *CSVTransactionLog) Path() string {
	return l.path
}

func (l *CSVTransactionLog) List(ctx context.Context) ([]domain.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readRows(l.path)
	if err != nil {
		return nil, err
	}

	txs := make([]domain.TransactionRecord, 0, len(rows))
	for i, row := range rows {
		tx, err := decodeTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", domain.ErrStoreUnreadable, l.path, i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (l *CSVTransactionLog) Append(ctx context.Context, tx domain.TransactionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnwritable, l.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(encodeTransaction(tx)); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnwritable, l.path, err)
	}
	return closeWriter(l.path, f, w)
}

// readRows returns nil rows for a file that does not exist yet.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnreadable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreUnreadable, path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func closeWriter(path string, f *os.File, w *csv.Writer) error {
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnwritable, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnwritable, path, err)
	}
	return nil
}
