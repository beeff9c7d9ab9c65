package service

import (
	"context"
	"errors"
	"log/slog"
)

var ErrDeliveryNotConfigured = errors.New("delivery not configured")

// Notifier delivers a reminder outside the app.
type Notifier interface {
	// Notify returns nil only when the message was handed to the provider.
	Notify(ctx context.Context, channel, destination, subject, message string) error
}

// LogNotifier logs reminders and reports every one as undelivered.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, channel, destination, subject, message string) error {
	slog.InfoContext(ctx, "Reminder not delivered, no provider configured",
		"channel", channel,
		"destination", destination,
		"subject", subject,
	)
	return ErrDeliveryNotConfigured
}
