// README: Payment gateway interface and the simulated implementation.
package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
	"ridecore/internal/types"
)

// Gateway settles a completed ride. The processing itself is opaque to the
// dispatch core; only the success flag matters.
type Gateway interface {
	Process(ctx context.Context, rec ride.Snapshot, fare types.Money) (bool, error)
}

// SimulatedGateway stands in for the real processor: it waits for the
// configured delay and succeeds, unless the context expires first.
type SimulatedGateway struct {
	delay time.Duration
	log   *zap.Logger
}

func NewSimulatedGateway(delay time.Duration, log *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, log: log}
}

func (g *SimulatedGateway) Process(ctx context.Context, rec ride.Snapshot, fare types.Money) (bool, error) {
	g.log.Info("payment processing initiated",
		zap.String("ride_id", string(rec.ID)),
		zap.String("rider", rec.RiderName),
		zap.String("pickup", rec.Pickup),
		zap.String("destination", rec.Destination),
		zap.Int64("amount", fare.Amount),
		zap.String("currency", fare.Currency),
	)
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	g.log.Info("payment successful", zap.String("ride_id", string(rec.ID)))
	return true, nil
}
