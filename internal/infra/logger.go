// README: Structured logger construction.
package infra

import "go.uber.org/zap"

// NewLogger returns the process-wide zap logger. Development mode trades
// JSON output for console encoding.
func NewLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
