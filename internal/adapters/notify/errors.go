package notify

import "errors"

// Sentinel kinds for notification errors.
var (
	ErrNotConfigured = errors.New("notifier not configured")
	ErrSendFailed    = errors.New("notification send failed")
)
