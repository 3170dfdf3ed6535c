package internal

import (
	"fmt"
	"time"
)

// Version is the ankiword release version
const Version = "0.3.0"

// GenerateNoteID returns a unique note identifier based on the current time.
// Anki's "Note ID" field expects epoch milliseconds.
func GenerateNoteID() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// SanitizeFilename creates a safe filename component from a word.
// Every character outside [a-zA-Z0-9] becomes an underscore, so the same
// word always maps to the same media name.
func SanitizeFilename(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if isAlphaNumeric(r) {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) > 80 {
		result = result[:80]
	}
	return string(result)
}

// isAlphaNumeric checks if a rune is ASCII alphanumeric
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
