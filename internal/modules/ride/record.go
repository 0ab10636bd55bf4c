// README: Mutable per-trip record with serialized, guarded status transitions.
package ride

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ridecore/internal/types"
)

var (
	ErrInvalidTransition = errors.New("invalid ride status transition")
	ErrFareAlreadySet    = errors.New("fare already set")
	ErrEmptyDriver       = errors.New("driver name must not be empty")
)

// TransitionObserver receives every applied status transition. Observers run
// after the record is unlocked; they must not transition the record themselves.
type TransitionObserver interface {
	StatusChanged(rec Snapshot, from, to Status)
}

// Snapshot is a read-only copy of a record, safe to retain across goroutines.
type Snapshot struct {
	ID          types.ID
	RiderName   string
	Pickup      string
	Destination string
	RideType    RideType
	Vehicle     Vehicle
	DriverName  string
	Fare        types.Money
	Status      Status
}

// Record is the mutable trip state passed through every dispatch stage.
// Classification fields are written by the booking pipeline before the record
// is published; from then on all shared state is guarded by the record mutex,
// so concurrent transition triggers are serialized.
type Record struct {
	ID          types.ID
	RiderName   string
	Pickup      string
	Destination string
	RideType    RideType
	Vehicle     Vehicle
	CreatedAt   time.Time

	mu          sync.Mutex
	status      Status
	driverName  string
	fare        types.Money
	fareSet     bool
	confirmedAt *time.Time
	completedAt *time.Time
	cancelledAt *time.Time
	paidAt      *time.Time

	observers []TransitionObserver
}

// NewRecord creates a pending record. Observers registered here see every
// status transition for the record's whole life.
func NewRecord(riderName, pickup, destination string, observers ...TransitionObserver) *Record {
	return &Record{
		ID:          types.ID(uuid.NewString()),
		RiderName:   riderName,
		Pickup:      pickup,
		Destination: destination,
		CreatedAt:   time.Now(),
		status:      StatusPending,
		observers:   observers,
	}
}

func (r *Record) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Record) DriverName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.driverName
}

// Fare returns the fare and whether pricing has run.
func (r *Record) Fare() (types.Money, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fare, r.fareSet
}

// SetFare sets the fare exactly once; it is immutable afterwards.
func (r *Record) SetFare(m types.Money) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fareSet {
		return ErrFareAlreadySet
	}
	r.fare = m
	r.fareSet = true
	return nil
}

// Assign confirms the record and binds the driver in one step, preserving the
// invariant that driverName is non-empty exactly from "confirmed" onwards.
func (r *Record) Assign(driverName string) error {
	if driverName == "" {
		return ErrEmptyDriver
	}
	r.mu.Lock()
	if !CanTransition(r.status, StatusConfirmed) {
		from := r.status
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, StatusConfirmed)
	}
	from := r.status
	r.status = StatusConfirmed
	r.driverName = driverName
	now := time.Now()
	r.confirmedAt = &now
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.notifyObservers(snap, from, StatusConfirmed)
	return nil
}

// Transition applies a guarded status change and stamps the matching time
// field. Returns ErrInvalidTransition when the edge is not in the flow graph,
// which is how late triggers (e.g. a stage advance after cancellation) are
// turned into local no-ops.
func (r *Record) Transition(to Status) error {
	r.mu.Lock()
	from := r.status
	if !CanTransition(from, to) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	r.status = to
	now := time.Now()
	switch to {
	case StatusCompleted:
		r.completedAt = &now
	case StatusCancelled:
		r.cancelledAt = &now
	case StatusPaid:
		r.paidAt = &now
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.notifyObservers(snap, from, to)
	return nil
}

func (r *Record) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Record) snapshotLocked() Snapshot {
	return Snapshot{
		ID:          r.ID,
		RiderName:   r.RiderName,
		Pickup:      r.Pickup,
		Destination: r.Destination,
		RideType:    r.RideType,
		Vehicle:     r.Vehicle,
		DriverName:  r.driverName,
		Fare:        r.fare,
		Status:      r.status,
	}
}

func (r *Record) notifyObservers(snap Snapshot, from, to Status) {
	for _, o := range r.observers {
		o.StatusChanged(snap, from, to)
	}
}
