// Package notify delivers HTML messages to customers.
package notify

import (
	"context"
	"fmt"
)

// Sender delivers one HTML message to one recipient.
//
//go:generate mockgen -destination=mocks/mock_sender.go -package=mocks -source=sender.go
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Message is a single notification to deliver.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// DeliveryError reports a failed delivery to one recipient.
type DeliveryError struct {
	To  string
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %v", e.To, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
