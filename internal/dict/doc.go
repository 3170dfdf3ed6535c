// Package dict extracts dictionary data from the translate-shell CLI.
// It runs the tool for dumps and audio downloads and parses the loosely
// typed nested-array payload into a flat Entry, degrading to empty fields
// on any structural mismatch.
package dict
