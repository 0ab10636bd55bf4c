// README: Fare strategies; standard base fare and peak-hour surcharge.
package booking

import (
	"ridecore/internal/config"
	"ridecore/internal/modules/ride"
	"ridecore/internal/types"
)

const Currency = "INR"

// PricingStrategy computes the fare for a classified record.
type PricingStrategy interface {
	Fare(rec *ride.Record) types.Money
}

type StandardPricing struct {
	Base int64
}

func (p StandardPricing) Fare(_ *ride.Record) types.Money {
	return types.Money{Amount: p.Base, Currency: Currency}
}

type PeakPricing struct {
	Base      int64
	Surcharge int64
}

func (p PeakPricing) Fare(_ *ride.Record) types.Money {
	return types.Money{Amount: p.Base + p.Surcharge, Currency: Currency}
}

// PricingFromConfig picks the configured strategy. The selection policy
// between standard and peak pricing stays an injection point; config-driven
// switching is the default wiring only.
func PricingFromConfig(cfg config.PricingConfig) PricingStrategy {
	if cfg.PeakHours {
		return PeakPricing{Base: cfg.BaseFare, Surcharge: cfg.PeakSurcharge}
	}
	return StandardPricing{Base: cfg.BaseFare}
}
