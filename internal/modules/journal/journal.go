// README: Ride status transition journal; every transition becomes a log event and an optional stored row.
package journal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ridecore/internal/modules/ride"
	"ridecore/internal/types"
)

// Entry is one applied status transition.
type Entry struct {
	RideID     types.ID
	RiderName  string
	DriverName string
	FromStatus ride.Status
	ToStatus   ride.Status
	CreatedAt  time.Time
}

// Store persists transition entries. Append failures must not disturb the
// ride flow; the recorder logs and continues.
type Store interface {
	Append(ctx context.Context, e Entry) error
}

// Recorder implements ride.TransitionObserver. It is the structured event
// stream required of the dispatch core: every transition is logged, and
// journaled when a store is configured.
type Recorder struct {
	store Store
	log   *zap.Logger
}

// NewRecorder creates a recorder; store may be nil for log-only operation.
func NewRecorder(store Store, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

func (r *Recorder) StatusChanged(rec ride.Snapshot, from, to ride.Status) {
	r.log.Info("ride status changed",
		zap.String("ride_id", string(rec.ID)),
		zap.String("rider", rec.RiderName),
		zap.String("driver", rec.DriverName),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	if r.store == nil {
		return
	}
	e := Entry{
		RideID:     rec.ID,
		RiderName:  rec.RiderName,
		DriverName: rec.DriverName,
		FromStatus: from,
		ToStatus:   to,
		CreatedAt:  time.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.store.Append(ctx, e); err != nil {
		r.log.Error("journaling ride transition",
			zap.String("ride_id", string(rec.ID)),
			zap.Error(err),
		)
	}
}
