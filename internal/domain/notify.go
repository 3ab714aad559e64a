package domain

import "context"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Notification is a short operator-facing message, such as the result of
// a connection test.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
