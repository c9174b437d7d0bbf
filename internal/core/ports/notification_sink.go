package ports

import (
	"context"
)

// RecipientType identifies which kind of user a notification addresses.
type RecipientType string

const (
	// RecipientDriver addresses the courier-facing client.
	RecipientDriver RecipientType = "driver"
	// RecipientCustomer addresses the customer-facing client.
	RecipientCustomer RecipientType = "customer"
)

// Notification is a user-facing message handed to the notification collaborator.
// Data carries free-form key/value context the client renders alongside the text.
type Notification struct {
	UserID   string
	UserType RecipientType
	Title    string
	Message  string
	Data     map[string]string
}

// NotificationSink is the best-effort fan-out boundary for user-facing messages.
// Delivery failures surface as errs.UpstreamUnavailableError; callers log and
// move on; a failed notification never undoes the state change that caused it.
type NotificationSink interface {
	Notify(ctx context.Context, notification Notification) error
}
