// Package session orchestrates the interactive card-creation loop: deck
// selection, dictionary lookup, media staging, field editing and note
// submission. It runs single-threaded and synchronous; the only
// cross-cutting control flow is context cancellation on interrupt.
package session
