// README: FCM-backed push transport.
package notify

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMTransport delivers push notifications through Firebase Cloud Messaging.
// Recipients are addressed by per-user topic so the core never has to resolve
// device tokens.
type FCMTransport struct {
	client *messaging.Client
	log    *zap.Logger
}

func NewFCMTransport(client *messaging.Client, log *zap.Logger) *FCMTransport {
	return &FCMTransport{client: client, log: log}
}

func (t *FCMTransport) Send(ctx context.Context, message, recipient string, kind RecipientKind) error {
	msg := &messaging.Message{
		Topic: fmt.Sprintf("%s-%s", kind, recipient),
		Data: map[string]string{
			"recipient":      recipient,
			"recipient_kind": string(kind),
		},
		Notification: &messaging.Notification{
			Title: "Ride update",
			Body:  message,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	messageID, err := t.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending FCM to %s %s: %w", kind, recipient, err)
	}
	t.log.Info("push sent",
		zap.String("recipient", recipient),
		zap.String("recipient_kind", string(kind)),
		zap.String("message_id", messageID),
	)
	return nil
}
