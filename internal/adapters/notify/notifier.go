// Package notify delivers the advisory report to a chat channel.
package notify

import "context"

// Notifier sends a formatted report text to its destination.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
