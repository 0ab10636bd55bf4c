// README: Ride record, classification enums, and status definitions.
package ride

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusDriverOnTheWay Status = "driver_on_the_way"
	StatusDriverAtPickup Status = "driver_at_pickup"
	StatusInProgress     Status = "in_progress"
	StatusCompleted      Status = "completed"
	StatusPaid           Status = "paid"
	StatusCancelled      Status = "cancelled"
	StatusDriverRejected Status = "driver_rejected"
	StatusPaymentFailed  Status = "payment_failed"
)

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusDriverRejected, StatusPaymentFailed:
		return true
	}
	return false
}

type RideType string

const (
	RideNormal  RideType = "normal"
	RidePooling RideType = "pooling"
)

type VehicleKind string

const (
	VehicleCar  VehicleKind = "car"
	VehicleAuto VehicleKind = "auto"
)

type VehicleTier string

const (
	TierSedan      VehicleTier = "sedan"
	TierSUV        VehicleTier = "suv"
	TierThreeWheel VehicleTier = "3-wheeler"
)

// Vehicle is a flat descriptor; the tier refines the kind rather than
// subtyping it (sedan and suv are both cars).
type Vehicle struct {
	Kind VehicleKind
	Tier VehicleTier
}

// AllowedTransitions represents the ride status flow (diagram) as code.
// Cancellation is reachable from every non-terminal status.
var AllowedTransitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusDriverOnTheWay, StatusDriverRejected, StatusCancelled},
	StatusDriverOnTheWay: {StatusDriverAtPickup, StatusCancelled},
	StatusDriverAtPickup: {StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusCompleted, StatusCancelled},
	StatusCompleted:      {StatusPaid, StatusPaymentFailed, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
