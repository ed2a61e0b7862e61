package notify

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogSender records messages in the context logger instead of delivering
// them. It is used when no SMTP relay is configured.
type LogSender struct{}

var _ Sender = LogSender{}

// Send logs the message and always succeeds.
func (LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	zctx.From(ctx).Info("Message not delivered, no SMTP relay configured",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(htmlBody)),
	)
	return nil
}
