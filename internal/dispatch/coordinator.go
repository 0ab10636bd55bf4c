// README: Dispatch coordinator: turns a created booking into a matched, accepted, live ride.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"ridecore/internal/lifecycle"
	"ridecore/internal/modules/allocation"
	"ridecore/internal/modules/ride"
	"ridecore/internal/notify"
	"ridecore/internal/payment"
	"ridecore/internal/types"
)

var ErrUnknownRide = errors.New("unknown ride")

// RideDriver is the live-ride handle the coordinator manages. Satisfied by
// *lifecycle.Driver; tests swap in fakes.
type RideDriver interface {
	Start(ctx context.Context) error
	Cancel(ctx context.Context) error
	Done() <-chan struct{}
}

// DriverFactory builds the live handle for one confirmed record.
type DriverFactory func(rec *ride.Record) RideDriver

// Allocator runs the matching strategy against a pending record.
type Allocator interface {
	Allocate(ctx context.Context, rec *ride.Record)
}

// Notifier is the slice of the notification pipeline the coordinator uses.
type Notifier interface {
	Notify(ctx context.Context, event notify.EventType, rec *ride.Record, message string)
	NotifyRider(ctx context.Context, message, riderName string)
}

// Coordinator subscribes to booking creation and owns the rest of the ride's
// life: allocation, the acceptance decision, and the live stage runner. It
// also indexes every record it has seen so status and cancel requests can be
// served by ID.
type Coordinator struct {
	alloc     Allocator
	notifier  Notifier
	newDriver DriverFactory
	log       *zap.Logger

	mu     sync.Mutex
	rides  map[types.ID]*ride.Record
	active map[types.ID]RideDriver
	wg     sync.WaitGroup
}

func NewCoordinator(alloc Allocator, notifier Notifier, newDriver DriverFactory, log *zap.Logger) *Coordinator {
	return &Coordinator{
		alloc:     alloc,
		notifier:  notifier,
		newDriver: newDriver,
		log:       log,
		rides:     make(map[types.ID]*ride.Record),
		active:    make(map[types.ID]RideDriver),
	}
}

var _ Allocator = (*allocation.Orchestrator)(nil)

// OnBookingCreated is the bus entry point. Allocation failure and driver
// rejection both end the flow here; only an accepted ride goes live.
func (c *Coordinator) OnBookingCreated(ctx context.Context, rec *ride.Record) {
	c.mu.Lock()
	c.rides[rec.ID] = rec
	c.mu.Unlock()

	c.alloc.Allocate(ctx, rec)
	if rec.Status() != ride.StatusConfirmed {
		c.notifier.NotifyRider(ctx,
			"No drivers are available right now. Please try again shortly.", rec.RiderName)
		return
	}

	c.notifier.Notify(ctx, notify.EventRideAccepted, rec, "")
	if rec.Status() != ride.StatusDriverOnTheWay {
		// rejected (or cancelled in the window); the pipeline already told the rider
		return
	}

	drv := c.newDriver(rec)
	c.mu.Lock()
	c.active[rec.ID] = drv
	c.mu.Unlock()

	// the live run outlasts the triggering request
	runCtx := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.active, rec.ID)
			c.mu.Unlock()
		}()
		if err := drv.Start(runCtx); err != nil {
			c.log.Error("live ride run rejected",
				zap.String("ride_id", string(rec.ID)),
				zap.Error(err),
			)
		}
	}()
}

// Ride returns a point-in-time view of a known ride.
func (c *Coordinator) Ride(id types.ID) (ride.Snapshot, error) {
	c.mu.Lock()
	rec, ok := c.rides[id]
	c.mu.Unlock()
	if !ok {
		return ride.Snapshot{}, ErrUnknownRide
	}
	return rec.Snapshot(), nil
}

// CancelRide cancels a ride by ID. Live rides go through their driver so the
// pending stage delay is interrupted; rides that never went live are turned
// terminal directly.
func (c *Coordinator) CancelRide(ctx context.Context, id types.ID) error {
	c.mu.Lock()
	rec, known := c.rides[id]
	drv, live := c.active[id]
	c.mu.Unlock()
	if !known {
		return ErrUnknownRide
	}

	if live {
		return drv.Cancel(ctx)
	}

	if err := rec.Transition(ride.StatusCancelled); err != nil {
		return err
	}
	c.log.Info("ride cancelled before going live", zap.String("ride_id", string(id)))
	c.notifier.NotifyRider(ctx, "Your ride has been cancelled.", rec.RiderName)
	return nil
}

// Wait blocks until every live ride the coordinator started has finished.
func (c *Coordinator) Wait() { c.wg.Wait() }

// DefaultDriverFactory wires lifecycle drivers from shared collaborators.
func DefaultDriverFactory(
	geo lifecycle.Geo,
	notifier lifecycle.Notifier,
	gateway payment.Gateway,
	sleeper lifecycle.Sleeper,
	timings lifecycle.Timings,
	log *zap.Logger,
) DriverFactory {
	return func(rec *ride.Record) RideDriver {
		return lifecycle.NewDriver(rec, geo, notifier, gateway, sleeper, timings, log)
	}
}
