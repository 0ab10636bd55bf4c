// README: Synchronous booking event fan-out with a locked listener registry.
package bus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
)

// Listener receives every published booking. The record is fully populated
// (classified and priced) by the time Publish runs.
type Listener interface {
	OnBookingCreated(ctx context.Context, rec *ride.Record)
}

// Bus fans a booking out to every subscribed listener, synchronously and in
// subscription order. Publishes for distinct records may run concurrently;
// only registration changes take the write lock.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	log       *zap.Logger
}

func New(log *zap.Logger) *Bus {
	return &Bus{log: log}
}

func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

func (b *Bus) Unsubscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, cur := range b.listeners {
		if cur == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers rec to every listener registered at call time. Each
// listener completes before the next runs.
func (b *Bus) Publish(ctx context.Context, rec *ride.Record) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	b.log.Info("booking published",
		zap.String("ride_id", string(rec.ID)),
		zap.String("rider", rec.RiderName),
		zap.Int("listeners", len(listeners)),
	)
	for _, l := range listeners {
		l.OnBookingCreated(ctx, rec)
	}
}
