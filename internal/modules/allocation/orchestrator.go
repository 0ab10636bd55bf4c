// README: Allocation orchestrator: runs the strategy once and reports the outcome.
package allocation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
)

// DriverNotifier delivers the "new ride request" notice to the matched driver.
type DriverNotifier interface {
	NotifyDriver(ctx context.Context, message, driverName string)
}

// Orchestrator wraps a strategy. Allocate never fails loudly: an unconfirmed
// match leaves the record pending, and callers decide what to do by checking
// the status afterwards.
type Orchestrator struct {
	strategy Strategy
	notifier DriverNotifier
	log      *zap.Logger
}

func NewOrchestrator(strategy Strategy, notifier DriverNotifier, log *zap.Logger) *Orchestrator {
	return &Orchestrator{strategy: strategy, notifier: notifier, log: log}
}

// Allocate invokes the strategy exactly once. On a confirmed match the record
// moves to confirmed with the driver bound, and the driver is notified.
func (o *Orchestrator) Allocate(ctx context.Context, rec *ride.Record) {
	driver, confirmed := o.strategy.Match(ctx, rec)
	if !confirmed {
		o.log.Warn("no driver matched",
			zap.String("ride_id", string(rec.ID)),
			zap.String("rider", rec.RiderName),
		)
		return
	}
	if err := rec.Assign(driver); err != nil {
		o.log.Error("binding matched driver",
			zap.String("ride_id", string(rec.ID)),
			zap.String("driver", driver),
			zap.Error(err),
		)
		return
	}
	o.log.Info("driver allocated",
		zap.String("ride_id", string(rec.ID)),
		zap.String("driver", driver),
	)
	o.notifier.NotifyDriver(ctx,
		fmt.Sprintf("New ride request from %s to %s. Please accept.", rec.RiderName, rec.Destination),
		driver,
	)
}
