// README: Pluggable driver-matching strategies.
package allocation

import (
	"context"

	"ridecore/internal/modules/ride"
)

// Strategy selects a driver for a record. It is called at most once per ride;
// confirmed=false means no driver could be matched.
type Strategy interface {
	Match(ctx context.Context, rec *ride.Record) (driverName string, confirmed bool)
}

// CandidateSource lists currently available drivers, nearest-first as far as
// the source can tell.
type CandidateSource interface {
	AvailableDrivers(ctx context.Context) []string
}

// RatingSource resolves the best-rated available driver.
type RatingSource interface {
	TopRated(ctx context.Context) (string, bool)
}

// NearestDriver picks the first available candidate. With no source and an
// empty fallback the strategy cannot confirm, which is the "no driver
// available" branch callers must handle.
type NearestDriver struct {
	Source   CandidateSource
	Fallback string
}

func (s NearestDriver) Match(ctx context.Context, _ *ride.Record) (string, bool) {
	if s.Source != nil {
		if candidates := s.Source.AvailableDrivers(ctx); len(candidates) > 0 {
			return candidates[0], true
		}
	}
	if s.Fallback != "" {
		return s.Fallback, true
	}
	return "", false
}

// HighestRated picks the top-rated available driver.
type HighestRated struct {
	Source   RatingSource
	Fallback string
}

func (s HighestRated) Match(ctx context.Context, _ *ride.Record) (string, bool) {
	if s.Source != nil {
		if name, ok := s.Source.TopRated(ctx); ok {
			return name, true
		}
	}
	if s.Fallback != "" {
		return s.Fallback, true
	}
	return "", false
}
