// README: Booking request and the ride-type / vehicle selectors.
package booking

import (
	"errors"

	"ridecore/internal/modules/ride"
)

var ErrBadRequest = errors.New("bad booking request")

// Request replaces the interactive booking form. RiderName, Pickup and
// Destination are required; RideType and Vehicle default when unmatched.
type Request struct {
	RiderName   string
	Pickup      string
	Destination string
	RideType    string
	Vehicle     string
}

// RideTypeSelector resolves the requested ride type; matched is false when
// the descriptor fell back to the default variant.
type RideTypeSelector interface {
	Resolve(requested string) (rt ride.RideType, matched bool)
}

// VehicleSelector resolves the requested vehicle descriptor into a flat
// {kind, tier} classification.
type VehicleSelector interface {
	Resolve(requested string) (v ride.Vehicle, matched bool)
}

// DefaultRideTypes keeps the documented quirk: anything that is not "normal"
// books as pooling.
type DefaultRideTypes struct{}

func (DefaultRideTypes) Resolve(requested string) (ride.RideType, bool) {
	switch requested {
	case string(ride.RideNormal):
		return ride.RideNormal, true
	case string(ride.RidePooling):
		return ride.RidePooling, true
	}
	return ride.RidePooling, false
}

// DefaultVehicles maps sedan/suv to car with the matching tier; every other
// descriptor falls back to an auto.
type DefaultVehicles struct{}

func (DefaultVehicles) Resolve(requested string) (ride.Vehicle, bool) {
	switch requested {
	case "sedan":
		return ride.Vehicle{Kind: ride.VehicleCar, Tier: ride.TierSedan}, true
	case "suv":
		return ride.Vehicle{Kind: ride.VehicleCar, Tier: ride.TierSUV}, true
	case "auto":
		return ride.Vehicle{Kind: ride.VehicleAuto, Tier: ride.TierThreeWheel}, true
	}
	return ride.Vehicle{Kind: ride.VehicleAuto, Tier: ride.TierThreeWheel}, false
}
