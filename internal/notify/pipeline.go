// README: Notification pipeline: event-keyed behaviors over a base send, with the ride-accepted auto-accept.
package notify

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
)

// EventType keys the behavior applied on top of the base send.
type EventType string

const (
	EventRideAccepted  EventType = "ride_accepted"
	EventDriverArrived EventType = "driver_arrived"
	EventRideCompleted EventType = "ride_completed"
	EventCustom        EventType = "custom"
)

// Acceptor decides whether an allocated driver takes the ride. The default
// accepts unconditionally; injecting a different policy makes the rejection
// branch reachable.
type Acceptor interface {
	Accept(rec *ride.Record) bool
}

type AutoAccept struct{}

func (AutoAccept) Accept(_ *ride.Record) bool { return true }

// Observer is the secondary fan-out channel, fed alongside rider delivery for
// telemetry-style consumers. Observers never mutate ride state.
type Observer interface {
	Notice(message, recipient string)
}

// LogObserver mirrors broadcast notices to the log.
type LogObserver struct {
	Channel string
	Log     *zap.Logger
}

func (o *LogObserver) Notice(message, recipient string) {
	o.Log.Info("notice broadcast",
		zap.String("channel", o.Channel),
		zap.String("recipient", recipient),
		zap.String("message", message),
	)
}

// Pipeline composes a base send behavior with at most one event-keyed
// decorator. Only the ride-accepted behavior may touch ride state, and only
// for the confirmed -> driver_on_the_way (or driver_rejected) edge.
type Pipeline struct {
	rider    Transport // record-keyed deliveries
	direct   Transport // direct driver/rider notices
	acceptor Acceptor
	log      *zap.Logger

	mu        sync.RWMutex
	observers []Observer
}

func NewPipeline(rider, direct Transport, acceptor Acceptor, log *zap.Logger) *Pipeline {
	if acceptor == nil {
		acceptor = AutoAccept{}
	}
	return &Pipeline{rider: rider, direct: direct, acceptor: acceptor, log: log}
}

func (p *Pipeline) AddObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Notify applies the behavior keyed by event to the record. Unknown event
// types get the base behavior: deliver to the rider and broadcast.
func (p *Pipeline) Notify(ctx context.Context, event EventType, rec *ride.Record, message string) {
	switch event {
	case EventRideAccepted:
		p.rideAccepted(ctx, rec)
	default:
		if message == "" {
			message = "Ride event occurred"
		}
		p.send(ctx, p.rider, message, rec.RiderName, RecipientRider)
		p.broadcast(message, rec.RiderName)
	}
	p.log.Info("notification dispatched",
		zap.String("event", string(event)),
		zap.String("ride_id", string(rec.ID)),
		zap.String("status", string(rec.Status())),
	)
}

// rideAccepted runs the accept decision for a freshly confirmed ride. A
// record past confirmed is left untouched, which makes double triggers
// harmless.
func (p *Pipeline) rideAccepted(ctx context.Context, rec *ride.Record) {
	if rec.Status() != ride.StatusConfirmed {
		p.log.Warn("ride_accepted ignored for non-confirmed record",
			zap.String("ride_id", string(rec.ID)),
			zap.String("status", string(rec.Status())),
		)
		return
	}

	if !p.acceptor.Accept(rec) {
		if err := rec.Transition(ride.StatusDriverRejected); err != nil {
			p.log.Warn("rejection lost transition race", zap.String("ride_id", string(rec.ID)), zap.Error(err))
			return
		}
		p.send(ctx, p.rider, "Your driver rejected the ride. We are sorry.", rec.RiderName, RecipientRider)
		return
	}

	if err := rec.Transition(ride.StatusDriverOnTheWay); err != nil {
		// cancelled between the status check and the transition
		p.log.Warn("acceptance lost transition race", zap.String("ride_id", string(rec.ID)), zap.Error(err))
		return
	}
	msg := fmt.Sprintf("Your ride is accepted by driver %s. Driver is on the way to %s.",
		rec.DriverName(), rec.Pickup)
	p.send(ctx, p.rider, msg, rec.RiderName, RecipientRider)
}

// NotifyDriver delivers a direct notice to a driver by name, bypassing the
// record-keyed path.
func (p *Pipeline) NotifyDriver(ctx context.Context, message, driverName string) {
	p.send(ctx, p.direct, message, driverName, RecipientDriver)
	p.broadcast(message, driverName)
}

// NotifyRider delivers a direct notice to a rider by name.
func (p *Pipeline) NotifyRider(ctx context.Context, message, riderName string) {
	p.send(ctx, p.direct, message, riderName, RecipientRider)
	p.broadcast(message, riderName)
}

func (p *Pipeline) send(ctx context.Context, t Transport, message, recipient string, kind RecipientKind) {
	if err := t.Send(ctx, message, recipient, kind); err != nil {
		p.log.Error("notification delivery failed",
			zap.String("recipient", recipient),
			zap.String("recipient_kind", string(kind)),
			zap.Error(err),
		)
	}
}

func (p *Pipeline) broadcast(message, recipient string) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()
	for _, o := range observers {
		o.Notice(message, recipient)
	}
}
