// README: Common value objects shared across modules.
package types

// ID identifies a ride, rider, or driver.
type ID string

// Money is an integer amount in the smallest currency unit.
type Money struct {
	Amount   int64
	Currency string
}

// Add returns m plus the given amount, keeping m's currency.
func (m Money) Add(amount int64) Money {
	return Money{Amount: m.Amount + amount, Currency: m.Currency}
}
