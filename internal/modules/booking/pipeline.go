// README: Booking pipeline: classify, price once, publish.
package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
)

// Publisher is the booking event bus as seen by the pipeline.
type Publisher interface {
	Publish(ctx context.Context, rec *ride.Record)
}

// Pipeline builds a ride record from a request. Every step is an injected
// strategy so ride typing, vehicle resolution and pricing can be swapped
// independently.
type Pipeline struct {
	rideTypes RideTypeSelector
	vehicles  VehicleSelector
	pricing   PricingStrategy
	publisher Publisher
	observers []ride.TransitionObserver
	log       *zap.Logger
}

func NewPipeline(
	rideTypes RideTypeSelector,
	vehicles VehicleSelector,
	pricing PricingStrategy,
	publisher Publisher,
	log *zap.Logger,
	observers ...ride.TransitionObserver,
) *Pipeline {
	return &Pipeline{
		rideTypes: rideTypes,
		vehicles:  vehicles,
		pricing:   pricing,
		publisher: publisher,
		observers: observers,
		log:       log,
	}
}

// CreateBooking validates the request, classifies and prices the record, and
// publishes it. The fare is set exactly once, before the publish call; from
// the publish onwards the dispatch flow owns the record.
func (p *Pipeline) CreateBooking(ctx context.Context, req Request) (*ride.Record, error) {
	rider := strings.TrimSpace(req.RiderName)
	pickup := strings.TrimSpace(req.Pickup)
	dest := strings.TrimSpace(req.Destination)
	if rider == "" || pickup == "" || dest == "" {
		return nil, fmt.Errorf("%w: rider name, pickup and destination are required", ErrBadRequest)
	}

	rec := ride.NewRecord(rider, pickup, dest, p.observers...)

	rideType, matched := p.rideTypes.Resolve(strings.TrimSpace(req.RideType))
	if !matched {
		p.log.Warn("unmatched ride type, using default",
			zap.String("ride_id", string(rec.ID)),
			zap.String("requested", req.RideType),
			zap.String("resolved", string(rideType)),
		)
	}
	rec.RideType = rideType

	vehicle, matched := p.vehicles.Resolve(strings.TrimSpace(req.Vehicle))
	if !matched {
		p.log.Warn("unmatched vehicle descriptor, using default",
			zap.String("ride_id", string(rec.ID)),
			zap.String("requested", req.Vehicle),
			zap.String("resolved_kind", string(vehicle.Kind)),
			zap.String("resolved_tier", string(vehicle.Tier)),
		)
	}
	rec.Vehicle = vehicle

	if err := rec.SetFare(p.pricing.Fare(rec)); err != nil {
		return nil, fmt.Errorf("pricing booking %s: %w", rec.ID, err)
	}

	fare, _ := rec.Fare()
	p.log.Info("booking created",
		zap.String("ride_id", string(rec.ID)),
		zap.String("rider", rec.RiderName),
		zap.String("pickup", rec.Pickup),
		zap.String("destination", rec.Destination),
		zap.String("ride_type", string(rec.RideType)),
		zap.String("vehicle", string(rec.Vehicle.Kind)),
		zap.String("vehicle_tier", string(rec.Vehicle.Tier)),
		zap.Int64("fare", fare.Amount),
	)

	p.publisher.Publish(ctx, rec)
	return rec, nil
}
