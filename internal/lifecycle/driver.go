// README: Ride lifecycle driver: timed stage advancement from driver_on_the_way to payment.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
	"ridecore/internal/notify"
	"ridecore/internal/payment"
)

var (
	ErrNotLive       = errors.New("ride is not ready for live management")
	ErrNotCancelable = errors.New("ride can no longer be cancelled")
)

// Timings bound each simulated stage and the payment call.
type Timings struct {
	ApproachHop    time.Duration
	BoardingWait   time.Duration
	TripHop        time.Duration
	PaymentTimeout time.Duration
}

// Geo is the geolocation collaborator; writes are fire-and-forget.
type Geo interface {
	UpdateDriverLocation(ctx context.Context, driverName, location string)
}

// Notifier is the slice of the notification pipeline the lifecycle needs.
type Notifier interface {
	Notify(ctx context.Context, event notify.EventType, rec *ride.Record, message string)
	NotifyDriver(ctx context.Context, message, driverName string)
	NotifyRider(ctx context.Context, message, riderName string)
}

// Driver advances exactly one confirmed ride through its timed stages. It is
// the single writer for its record; cancellation is the only other entry
// point and is serialized through the record's transition guard.
type Driver struct {
	rec      *ride.Record
	geo      Geo
	notifier Notifier
	gateway  payment.Gateway
	sleeper  Sleeper
	timings  Timings
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDriver(
	rec *ride.Record,
	geo Geo,
	notifier Notifier,
	gateway payment.Gateway,
	sleeper Sleeper,
	timings Timings,
	log *zap.Logger,
) *Driver {
	return &Driver{
		rec:      rec,
		geo:      geo,
		notifier: notifier,
		gateway:  gateway,
		sleeper:  sleeper,
		timings:  timings,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Done is closed once the ride has reached a terminal status (or the run was
// abandoned after cancellation).
func (d *Driver) Done() <-chan struct{} { return d.done }

// Start runs the stage sequence to completion and blocks until the record is
// terminal. A record that is not in driver_on_the_way is rejected with a
// diagnostic and left untouched.
func (d *Driver) Start(ctx context.Context) error {
	if status := d.rec.Status(); status != ride.StatusDriverOnTheWay {
		return fmt.Errorf("%w: status %s", ErrNotLive, status)
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()
	defer cancel()
	defer close(d.done)

	d.log.Info("live ride management started",
		zap.String("ride_id", string(d.rec.ID)),
		zap.String("driver", d.rec.DriverName()),
		zap.String("destination", d.rec.Destination),
	)
	d.run(runCtx)
	return nil
}

// Cancel aborts the ride: the record turns terminal, any pending stage delay
// is interrupted, and both parties are notified. Fails once the ride has
// completed or is already terminal.
func (d *Driver) Cancel(ctx context.Context) error {
	if status := d.rec.Status(); status == ride.StatusCompleted {
		return fmt.Errorf("%w: status %s", ErrNotCancelable, status)
	}
	if err := d.rec.Transition(ride.StatusCancelled); err != nil {
		return fmt.Errorf("%w: %v", ErrNotCancelable, err)
	}

	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	d.log.Info("ride cancelled", zap.String("ride_id", string(d.rec.ID)))
	d.notifier.NotifyRider(ctx, "Your ride has been cancelled.", d.rec.RiderName)
	d.notifier.NotifyDriver(ctx,
		fmt.Sprintf("The ride for %s has been cancelled.", d.rec.RiderName),
		d.rec.DriverName(),
	)
	return nil
}

// run executes the stage sequence. Every suspend point checks cancellation
// through the sleeper, and every advance goes through the guarded transition,
// so a cancel landing between stages stops the run at the next step.
func (d *Driver) run(ctx context.Context) {
	driver := d.rec.DriverName()
	pickup := d.rec.Pickup
	dest := d.rec.Destination

	// en route to pickup
	d.geo.UpdateDriverLocation(ctx, driver, "near_"+pickup+"_1")
	if err := d.sleeper.Sleep(ctx, d.timings.ApproachHop); err != nil {
		return
	}
	d.geo.UpdateDriverLocation(ctx, driver, "near_"+pickup+"_2")
	if err := d.sleeper.Sleep(ctx, d.timings.ApproachHop); err != nil {
		return
	}

	// arrival at pickup
	d.geo.UpdateDriverLocation(ctx, driver, pickup)
	if err := d.rec.Transition(ride.StatusDriverAtPickup); err != nil {
		return
	}
	d.notifier.Notify(ctx, notify.EventDriverArrived, d.rec,
		fmt.Sprintf("Your driver %s has arrived at %s. Please board the vehicle.", driver, pickup))
	if err := d.sleeper.Sleep(ctx, d.timings.BoardingWait); err != nil {
		return
	}

	// trip in progress
	if err := d.rec.Transition(ride.StatusInProgress); err != nil {
		return
	}
	d.geo.UpdateDriverLocation(ctx, driver, "midway_"+dest+"_1")
	if err := d.sleeper.Sleep(ctx, d.timings.TripHop); err != nil {
		return
	}
	d.geo.UpdateDriverLocation(ctx, driver, "midway_"+dest+"_2")
	if err := d.sleeper.Sleep(ctx, d.timings.TripHop); err != nil {
		return
	}

	// destination reached
	d.geo.UpdateDriverLocation(ctx, driver, dest)
	if err := d.rec.Transition(ride.StatusCompleted); err != nil {
		return
	}
	d.notifier.Notify(ctx, notify.EventRideCompleted, d.rec,
		fmt.Sprintf("Your ride with %s has successfully completed.", driver))
	d.notifier.NotifyDriver(ctx,
		fmt.Sprintf("Ride for %s to %s completed.", d.rec.RiderName, dest), driver)

	d.collectPayment(ctx)
}

func (d *Driver) collectPayment(ctx context.Context) {
	fare, ok := d.rec.Fare()
	if !ok {
		// a record cannot reach completed without pricing, but keep the guard
		d.log.Error("completed ride has no fare", zap.String("ride_id", string(d.rec.ID)))
	}

	payCtx := ctx
	if d.timings.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, d.timings.PaymentTimeout)
		defer cancel()
	}

	success, err := d.gateway.Process(payCtx, d.rec.Snapshot(), fare)
	if err != nil || !success {
		d.log.Error("payment failed",
			zap.String("ride_id", string(d.rec.ID)),
			zap.Bool("success", success),
			zap.Error(err),
		)
		if terr := d.rec.Transition(ride.StatusPaymentFailed); terr == nil {
			d.notifier.NotifyRider(ctx,
				"Payment for your ride failed. Please settle the fare with support.", d.rec.RiderName)
		}
		return
	}

	if err := d.rec.Transition(ride.StatusPaid); err != nil {
		return
	}
	d.notifier.NotifyRider(ctx, "Payment successful! Thank you for riding with us.", d.rec.RiderName)
}
