// Package ledger owns the ordered in-memory transaction sequence and
// is the unit of consistency: every mutation validates its input,
// recomputes the running balances, persists the whole sequence and
// only then publishes a change event.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"ledger/internal/core"
	"ledger/internal/log"
)

var (
	// ErrIndexOutOfRange signals a removal referencing a position that
	// does not exist in the current snapshot.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotFound signals a removal referencing an unknown stable ID.
	ErrNotFound = errors.New("transaction not found")
)

// Persister loads and saves the full transaction sequence. The ledger
// never touches durable storage itself.
type Persister interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, records []core.Transaction) error
}

// Publisher announces successful mutations. Publishing is best-effort;
// a failure is logged, never surfaced to the mutating caller.
type Publisher interface {
	PublishLedgerChange(ctx context.Context, operation string, records int) error
}

// Store is the ledger engine. All mutating operations run under one
// mutex so validate, recompute and persist are observed atomically;
// readers copy a snapshot under the same lock and never see a
// partially recomputed sequence.
type Store struct {
	mu         sync.Mutex
	persister  Persister
	publisher  Publisher
	categories core.CategorySet
	records    []core.Transaction
	logger     *log.Logger
}

// New creates a store over the given persister. The publisher may be
// nil, in which case change events are skipped.
func New(persister Persister, publisher Publisher, categories core.CategorySet, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New("ledger", log.Config{})
	}
	return &Store{
		persister:  persister,
		publisher:  publisher,
		categories: categories,
		logger:     logger,
	}
}

// Load populates the store from the persister. An absent backing file
// yields an empty ledger; unreadable or corrupt content is an error so
// existing data is never silently discarded. Balances are recomputed
// rather than trusted from the file.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	core.Recalculate(records)

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Ledger loaded", "records", len(records))
	return nil
}

// Categories returns the configured category set.
func (s *Store) Categories() core.CategorySet {
	return s.categories
}

// Add validates the draft, appends it to the end of the sequence (which
// fixes its position for all future balance computation), recomputes,
// persists and publishes. The finalized record is returned. An invalid
// draft leaves the store unmodified; a failed save is returned alongside
// the record so the caller can detect a mutated-but-unsaved state.
func (s *Store) Add(ctx context.Context, draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(s.categories); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, draft.Transaction())
	return s.commit(ctx, "added", 1)
}

// Remove deletes the record at the given position in the current
// snapshot. Positions of later records shift down by one.
func (s *Store) Remove(ctx context.Context, index int) error {
	return s.RemoveMany(ctx, []int{index})
}

// RemoveMany deletes a batch of positions atomically: either every
// index is valid and all are removed with one recomputation and one
// save, or nothing changes and ErrIndexOutOfRange is returned.
func (s *Store) RemoveMany(ctx context.Context, indices []int) error {
	if len(indices) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.records) {
			return fmt.Errorf("%w: %d (ledger has %d records)", ErrIndexOutOfRange, i, len(s.records))
		}
		seen[i] = struct{}{}
	}

	ordered := make([]int, 0, len(seen))
	for i := range seen {
		ordered = append(ordered, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))
	for _, i := range ordered {
		s.records = append(s.records[:i], s.records[i+1:]...)
	}

	_, err := s.commit(ctx, "removed", len(ordered))
	return err
}

// RemoveByID deletes the record with the given stable identifier. The
// ID survives unrelated deletions, so callers holding one cannot be
// invalidated by position shifts.
func (s *Store) RemoveByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			_, err := s.commit(ctx, "removed", 1)
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ReplaceAll validates the bulk table and, on success, discards the
// current sequence and adopts the rows in their given order with fresh
// IDs. On validation failure the previous contents stay untouched and
// the validation error is returned.
func (s *Store) ReplaceAll(ctx context.Context, table core.Table) ([]core.Transaction, error) {
	drafts, err := core.ValidateTable(table)
	if err != nil {
		return nil, err
	}

	records := make([]core.Transaction, len(drafts))
	for i, d := range drafts {
		records[i] = d.Transaction()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	if _, err := s.commit(ctx, "replaced", len(records)); err != nil {
		return s.snapshot(), err
	}
	return s.snapshot(), nil
}

// List returns a read-only snapshot of the sequence in store order.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Summary totals debits and credits and reports the current balance.
func (s *Store) Summary() core.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.records)
}

// commit is the single exit path of every mutation: recompute, persist,
// publish. Routing all mutations through it keeps recomputation
// structurally inseparable from mutation. Caller holds s.mu. The
// returned transaction is the last record, which Add finalizes for its
// caller.
func (s *Store) commit(ctx context.Context, operation string, count int) (core.Transaction, error) {
	core.Recalculate(s.records)

	var last core.Transaction
	if n := len(s.records); n > 0 {
		last = s.records[n-1]
	}

	if err := s.persister.Save(ctx, s.records); err != nil {
		s.logger.ErrorContext(ctx, "Ledger mutated in memory but not saved",
			"operation", operation,
			"records", len(s.records),
			"error", err)
		return last, fmt.Errorf("save ledger after %s: %w", operation, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishLedgerChange(ctx, operation, count); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish ledger change",
				"operation", operation,
				"error", err)
		}
	}

	s.logger.InfoContext(ctx, "Ledger mutation committed",
		"operation", operation,
		"affected", count,
		"records", len(s.records))
	return last, nil
}

func (s *Store) snapshot() []core.Transaction {
	return append([]core.Transaction(nil), s.records...)
}
