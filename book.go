package stockbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when no transaction has the requested ID.
	ErrNotFound = errors.New("transaction not found")
	// ErrDuplicateID is returned when adding a transaction whose ID is taken.
	ErrDuplicateID = errors.New("duplicate transaction ID")
)

// Book is the transaction store: an ordered set of transactions with
// unique IDs, persisted as a JSONL file.
//
// Edits never mutate a transaction, they replace it.
// A Book is safe for concurrent use.
type Book struct {
	mu   sync.RWMutex
	path string
	txs  []Transaction
	log  zerolog.Logger
}

// NewBook returns an empty Book persisted at path.
func NewBook(path string, log zerolog.Logger) *Book {
	return &Book{path: path, log: log}
}

// OpenBook loads the Book at path. A missing file is an empty Book.
func OpenBook(path string, log zerolog.Logger) (*Book, error) {
	b := NewBook(path, log)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no ledger file, starting empty")
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()

	txs, err := DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", path, err)
	}
	for _, tx := range txs {
		if err := b.add(tx); err != nil {
			return nil, fmt.Errorf("cannot load ledger %q: %w", path, err)
		}
	}
	log.Debug().Str("path", path).Int("transactions", len(b.txs)).Msg("ledger loaded")
	return b, nil
}

// Path returns the file the Book is persisted to.
func (b *Book) Path() string { return b.path }

// Len returns the number of transactions.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.txs)
}

// Add validates tx and appends it. A new ID is assigned when tx has none.
// It returns the stored transaction.
func (b *Book) Add(tx Transaction) (Transaction, error) {
	if err := tx.Validate(); err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.add(tx); err != nil {
		return Transaction{}, err
	}
	b.log.Debug().Str("id", tx.ID).Stringer("type", tx.Type).Str("ticker", tx.Ticker).Msg("transaction added")
	return tx, nil
}

// add appends tx without validation. The caller holds the lock.
func (b *Book) add(tx Transaction) error {
	if tx.ID != "" && b.index(tx.ID) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateID, tx.ID)
	}
	b.txs = append(b.txs, tx)
	return nil
}

func (b *Book) index(id string) int {
	return slices.IndexFunc(b.txs, func(tx Transaction) bool { return tx.ID == id })
}

// Get returns the transaction with the given ID.
func (b *Book) Get(id string) (Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.index(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return b.txs[i], nil
}

// Replace replaces the transaction with the given ID by tx, as a whole.
// The replacement keeps the ID.
func (b *Book) Replace(id string, tx Transaction) (Transaction, error) {
	tx.ID = id
	if err := tx.Validate(); err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.index(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	b.txs[i] = tx
	b.log.Debug().Str("id", id).Msg("transaction replaced")
	return tx, nil
}

// Delete removes the transaction with the given ID.
func (b *Book) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	b.txs = slices.Delete(b.txs, i, i+1)
	b.log.Debug().Str("id", id).Msg("transaction deleted")
	return nil
}

// Transactions returns a copy of the transactions of portfolioID, all of
// them when portfolioID is empty, in replay order.
func (b *Book) Transactions(portfolioID string) []Transaction {
	b.mu.RLock()
	defer b.mu.RUnlock()
	txs := make([]Transaction, 0, len(b.txs))
	for _, tx := range b.txs {
		if portfolioID == "" || tx.PortfolioID == portfolioID {
			txs = append(txs, tx)
		}
	}
	SortTransactions(txs)
	return txs
}

// Portfolios returns the distinct portfolio IDs in use, sorted.
func (b *Book) Portfolios() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var ids []string
	for _, tx := range b.txs {
		if tx.PortfolioID != "" && !slices.Contains(ids, tx.PortfolioID) {
			ids = append(ids, tx.PortfolioID)
		}
	}
	slices.Sort(ids)
	return ids
}

// Tickers returns the distinct tickers in use, sorted.
func (b *Book) Tickers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var tickers []string
	for _, tx := range b.txs {
		if tx.Ticker != "" && !slices.Contains(tickers, tx.Ticker) {
			tickers = append(tickers, tx.Ticker)
		}
	}
	slices.Sort(tickers)
	return tickers
}

// Save writes the Book to its file in replay order, atomically: the data is
// written to a temporary file in the same directory, then renamed.
func (b *Book) Save() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create ledger directory: %w", err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(b.path)+".*")
	if err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	defer os.Remove(f.Name())

	if err := EncodeTransactions(f, b.txs); err != nil {
		f.Close()
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	if err := os.Rename(f.Name(), b.path); err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}
	b.log.Debug().Str("path", b.path).Int("transactions", len(b.txs)).Msg("ledger saved")
	return nil
}
