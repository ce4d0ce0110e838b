package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const tableEventSequence = "event_sequence"

// sequenceCounter numbers attempt events. Several events can share a
// millisecond timestamp; the sequence orders history and "after N" reads.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the single counter row if missing. The table
// itself is created by migrate.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	query, args := builder().
		Insert(tableEventSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("seed event sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next claims the next sequence number. The in-process lock keeps appends
// ordered; UPDATE ... RETURNING keeps the claim atomic across connections.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE `+tableEventSequence+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("claim sequence: %w", err)
	}
	return seq, nil
}
