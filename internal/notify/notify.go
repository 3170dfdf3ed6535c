// Package notify sends best-effort desktop notifications. Failures are
// reported but never escalate: a missing notification daemon must not take
// the session down with it.
package notify

import "github.com/gen2brain/beeep"

// Send shows a desktop notification with the given title and message
func Send(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Alert shows an urgent desktop notification, used for fatal startup errors
func Alert(title, message string) error {
	return beeep.Alert(title, message, "")
}
