package notify

import (
	"context"
	"log/slog"
)

// ConsoleSender writes receipt emails to the application log. It stands in
// for SendGrid in development and when no API key is configured.
type ConsoleSender struct{}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	slog.Info("Receipt email (console backend)",
		"to", msg.ToEmail,
		"subject", msg.Subject,
		"attachment", msg.AttachmentName,
		"attachment_bytes", len(msg.Attachment))
	return nil
}
