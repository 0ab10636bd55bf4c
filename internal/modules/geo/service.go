// README: Geolocation service: write-through store plus observer fan-out.
package geo

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Observer is told about every location write. Used for tracking channels
// (polling, streaming) that mirror driver movement; observers never feed back
// into dispatch.
type Observer interface {
	DriverMoved(driverName, location string)
}

// Service is the geolocation collaborator the ride lifecycle writes to.
// Updates are fire-and-forget: store errors are logged, not returned.
type Service struct {
	store Store
	log   *zap.Logger

	mu        sync.RWMutex
	observers []Observer
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Service) RemoveObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.observers {
		if cur == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Service) UpdateDriverLocation(ctx context.Context, driverName, location string) {
	if err := s.store.SetDriverLocation(ctx, driverName, location); err != nil {
		s.log.Error("storing driver location",
			zap.String("driver", driverName),
			zap.String("location", location),
			zap.Error(err),
		)
		return
	}
	s.log.Info("driver moved",
		zap.String("driver", driverName),
		zap.String("location", location),
	)

	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()
	for _, o := range observers {
		o.DriverMoved(driverName, location)
	}
}

func (s *Service) DriverLocation(ctx context.Context, driverName string) (string, error) {
	return s.store.DriverLocation(ctx, driverName)
}

// LogObserver mirrors location updates to the log under a channel name,
// standing in for the polling and streaming trackers.
type LogObserver struct {
	Channel string
	Log     *zap.Logger
}

func (o *LogObserver) DriverMoved(driverName, location string) {
	o.Log.Info("location update",
		zap.String("channel", o.Channel),
		zap.String("driver", driverName),
		zap.String("location", location),
	)
}
