package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// seqCounter hands out the global monotonic sequence number. Per-table
// auto-increment IDs cannot order events across tables, so every append
// draws from this one counter; events are never renumbered.
//
// Raw SQL rather than ent because ent has no database-level atomic
// counter. The RETURNING clause makes the increment atomic in the
// database, the mutex serializes callers within the process.
type seqCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSeqCounter(db *sql.DB) (*seqCounter, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS event_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_value INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO event_sequence (id, next_value) VALUES (1, 1)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return nil, fmt.Errorf("init sequence table: %w", err)
		}
	}
	return &seqCounter{db: db}, nil
}

// Next reserves and returns the next sequence number.
func (sc *seqCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	row := sc.db.QueryRowContext(ctx,
		`UPDATE event_sequence SET next_value = next_value + 1 WHERE id = 1 RETURNING next_value - 1`)
	if err := row.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
