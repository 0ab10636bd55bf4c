// README: Delivery channel strategies for notifications (email, push).
package notify

import (
	"context"

	"go.uber.org/zap"
)

// RecipientKind tags who a message is addressed to.
type RecipientKind string

const (
	RecipientRider  RecipientKind = "rider"
	RecipientDriver RecipientKind = "driver"
)

// Transport is one delivery channel. Delivery is fire-and-forget; callers log
// errors and move on.
type Transport interface {
	Send(ctx context.Context, message, recipient string, kind RecipientKind) error
}

// EmailTransport is the stub e-mail channel: it emits the message as a
// structured log event.
type EmailTransport struct {
	Log *zap.Logger
}

func (t *EmailTransport) Send(_ context.Context, message, recipient string, kind RecipientKind) error {
	t.Log.Info("email sent",
		zap.String("recipient", recipient),
		zap.String("recipient_kind", string(kind)),
		zap.String("message", message),
	)
	return nil
}

// LogPushTransport is the stub push channel used when FCM is not configured.
type LogPushTransport struct {
	Log *zap.Logger
}

func (t *LogPushTransport) Send(_ context.Context, message, recipient string, kind RecipientKind) error {
	t.Log.Info("push sent",
		zap.String("recipient", recipient),
		zap.String("recipient_kind", string(kind)),
		zap.String("message", message),
	)
	return nil
}
