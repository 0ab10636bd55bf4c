// README: Journal stores: PostgreSQL-backed and in-memory.
package journal

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO ride_state_events (
            ride_id, rider_name, driver_name, from_status, to_status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.RideID),
		e.RiderName,
		e.DriverName,
		string(e.FromStatus),
		string(e.ToStatus),
		e.CreatedAt,
	)
	return err
}

type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *MemoryStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
