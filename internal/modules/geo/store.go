// README: Driver location store interface and in-memory implementation.
package geo

import (
	"context"
	"errors"
	"sync"
)

var ErrUnknownDriver = errors.New("driver location not found")

// Store is the key/value write-through behind the geolocation service.
// Location tokens are opaque strings.
type Store interface {
	SetDriverLocation(ctx context.Context, driverName, location string) error
	DriverLocation(ctx context.Context, driverName string) (string, error)
}

type MemoryStore struct {
	mu        sync.RWMutex
	locations map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{locations: map[string]string{}}
}

func (s *MemoryStore) SetDriverLocation(_ context.Context, driverName, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[driverName] = location
	return nil
}

func (s *MemoryStore) DriverLocation(_ context.Context, driverName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[driverName]
	if !ok {
		return "", ErrUnknownDriver
	}
	return loc, nil
}
