package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cleared-dev/payrecon/internal/id"
	"github.com/cleared-dev/payrecon/internal/model"
)

// File names inside a dataset directory.
const (
	InvoicesFile = "invoices.csv"
	PaymentsFile = "payments.csv"
	LedgerFile   = "ledger.csv"
)

// ErrMissingFile is returned when a required dataset file is absent.
var ErrMissingFile = errors.New("dataset file missing")

// DirSource loads a dataset from CSV files in a directory. ledger.csv is
// optional; invoices.csv and payments.csv are required.
type DirSource struct {
	Dir string
}

// NewDirSource creates a DirSource for dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Name implements Source.
func (s *DirSource) Name() string {
	return "dir:" + s.Dir
}

// Load implements Source.
func (s *DirSource) Load(ctx context.Context) (*Dataset, error) {
	var ds Dataset
	var err error

	if ds.Invoices, err = readFile(ctx, filepath.Join(s.Dir, InvoicesFile), true, ReadInvoices); err != nil {
		return nil, err
	}
	if ds.Payments, err = readFile(ctx, filepath.Join(s.Dir, PaymentsFile), true, ReadPayments); err != nil {
		return nil, err
	}
	if ds.LedgerEntries, err = readFile(ctx, filepath.Join(s.Dir, LedgerFile), false, ReadLedgerEntries); err != nil {
		return nil, err
	}
	return &ds, nil
}

func readFile[T any](ctx context.Context, path string, required bool, read func(r io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// Save writes ds as invoices.csv, payments.csv and ledger.csv under dir,
// creating dir if needed.
func Save(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset dir: %w", err)
	}

	if err := writeFile(filepath.Join(dir, InvoicesFile), func(f *os.File) error {
		return WriteInvoices(f, ds.Invoices)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, PaymentsFile), func(f *os.File) error {
		return WritePayments(f, ds.Payments)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, LedgerFile), func(f *os.File) error {
		return WriteLedgerEntries(f, ds.LedgerEntries)
	})
}

// AppendPayments adds payments to dir/payments.csv, skipping any whose ID is
// already present. It returns the number added.
func AppendPayments(ctx context.Context, dir string, payments []model.Payment) (int, error) {
	path := filepath.Join(dir, PaymentsFile)
	existing, err := readFile(ctx, path, false, ReadPayments)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[id.Normalize(p.PaymentID)] = true
	}
	added := 0
	for _, p := range payments {
		key := id.Normalize(p.PaymentID)
		if seen[key] {
			continue
		}
		seen[key] = true
		existing = append(existing, p)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating dataset dir: %w", err)
	}
	if err := writeFile(path, func(f *os.File) error {
		return WritePayments(f, existing)
	}); err != nil {
		return 0, err
	}
	return added, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
